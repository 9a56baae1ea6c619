package sync

import (
	"testing"
	"time"

	"smartwarga/core/reconcile"
	"smartwarga/feature/resident"

	"github.com/stretchr/testify/assert"
)

func TestResidentAdapter_CompareUsesSheetZone(t *testing.T) {
	wib := time.FixedZone("WIB", 7*60*60)
	local := resident.Resident{NIK: "3201010101010001", Name: "Lokal", UpdatedAt: time.Date(2024, 1, 1, 5, 0, 0, 0, time.UTC)}
	// 10:30 WIB is 03:30 UTC, older than the local edit.
	row := Row{NIK: "3201010101010001", Name: "Dari Sheet", UpdatedAt: "2024-01-01 10:30:00"}

	action, _ := newResidentAdapter(nil, wib).Compare(row, local)
	assert.Equal(t, reconcile.ActionSkip, action)

	action, _ = newResidentAdapter(nil, time.UTC).Compare(row, local)
	assert.Equal(t, reconcile.ActionUpdate, action)
}
