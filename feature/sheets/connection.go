package sheets

import "context"

// TestConnection opens the spreadsheet with the credential and reads its
// title, proving the service account has been granted access.
func TestConnection(ctx context.Context, opener Opener, credential []byte, sheetID string) (string, error) {
	sheet, err := opener.Open(ctx, credential, sheetID)
	if err != nil {
		return "", err
	}
	return sheet.Title(ctx)
}
