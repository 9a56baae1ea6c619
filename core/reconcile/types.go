package reconcile

// Item is an incoming record (e.g. a decoded spreadsheet row).
// Adapters define the concrete type.
type Item any

// Local is the stored counterpart of an Item.
type Local any

// ActionType represents the decision taken for one incoming item.
type ActionType string

const (
	// ActionInsert creates a record that does not exist locally.
	ActionInsert ActionType = "insert"
	// ActionUpdate overwrites a local record with the incoming item.
	ActionUpdate ActionType = "update"
	// ActionSkip leaves the local record untouched.
	ActionSkip ActionType = "skip"
	// ActionReject marks an item that failed validation.
	ActionReject ActionType = "reject"
	// ActionFail marks an item whose lookup or write failed.
	ActionFail ActionType = "fail"
)

// Action records what happened (or would happen, in a dry run) to one item.
type Action struct {
	// Index is the position of the item in the input.
	Index int `json:"index"`

	// Type is the decision.
	Type ActionType `json:"type"`

	// Key is the entity identifier, empty when the item had none.
	Key string `json:"key,omitempty"`

	// Reason explains skips, rejections and failures.
	Reason string `json:"reason,omitempty"`
}

// Summary provides aggregate counts for a run.
type Summary struct {
	Total    int `json:"total"`
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// Report is the outcome of a run.
type Report struct {
	Actions []Action `json:"actions"`
	Summary Summary  `json:"summary"`
	DryRun  bool     `json:"dry_run"`
}

// Errors returns "key: reason" lines for rejected and failed items.
func (r *Report) Errors() []string {
	var out []string
	for _, a := range r.Actions {
		if a.Type != ActionReject && a.Type != ActionFail {
			continue
		}
		key := a.Key
		if key == "" {
			key = "-"
		}
		out = append(out, key+": "+a.Reason)
	}
	return out
}

// Options controls a run.
type Options struct {
	// DryRun computes decisions without calling Insert or Update.
	DryRun bool
}
