// Package resident owns the resident registry: the gorm model keyed by the
// 16-digit NIK, a Store used both by the CRUD API and by the sheet sync, and
// the /api/residents handler.
//
// Every successful create, update or delete is reported to a ChangeNotifier.
// The sync feature plugs its auto-push queue in here so that single-record
// changes reach the spreadsheet without blocking the request.
package resident
