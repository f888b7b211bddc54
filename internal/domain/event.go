package domain

// Creation workflow stages as recorded in creation_events.
const (
	StageValidate = "validate"
	StageUpload   = "upload"
	StageMint     = "mint"
	StagePersist  = "persist"
	StageComplete = "complete"
)

// Creation event outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// CreationEvent is an append-only analytics record of one stage of a
// token creation attempt. Events are best-effort and never gate the
// workflow itself.
type CreationEvent struct {
	EventID     string // unique per event
	MintAddress string // empty for stages before the mint resolved
	Name        string
	Symbol      string
	Stage       string // validate | upload | mint | persist | complete
	Outcome     string // ok | error
	Detail      string // error text or supplementary info
	AssetOrigin string // set on upload/complete when an image was uploaded
	DurationMs  int64  // stage duration
	CreatedAt   int64  // Unix timestamp in milliseconds
}
