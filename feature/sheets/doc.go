// Package sheets is the Google Sheets transport.
//
// Two access modes exist. Read-only mode downloads a sheet as CSV without any
// credential: HTTPFetcher tries the publish-to-web URL first and falls back to
// the export URL. Authenticated mode uses a service-account key with the
// Sheets v4 API: APIOpener caches one API client per credential and hands out
// Spreadsheet values for range reads, clears, overwrites and appends.
//
// ExtractSheetID accepts the URL shapes users paste from the browser and
// reports false instead of failing when no id is present.
package sheets
