package models

// FeedbackAction identifies which user action triggered feedback collection.
type FeedbackAction string

const (
	ActionCopy           FeedbackAction = "copy"
	ActionDownloadPoster FeedbackAction = "download-poster"
	ActionDownloadVideo  FeedbackAction = "download-video"
)

var actionLabels = map[FeedbackAction]string{
	ActionCopy:           "Copied Text",
	ActionDownloadPoster: "Downloaded Poster",
	ActionDownloadVideo:  "Downloaded Video",
}

// Label maps an action tag to its display string. Unrecognized tags map to
// "Unknown Action".
func (a FeedbackAction) Label() string {
	if label, ok := actionLabels[a]; ok {
		return label
	}
	return "Unknown Action"
}

// FeedbackItem is one persisted feedback record.
type FeedbackItem struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Message  string `json:"message"`
	Rating   int    `json:"rating"`
	Action   string `json:"action"`
	Date     string `json:"date"`
	Platform string `json:"platform"`
}

// FeedbackDraft is the in-progress feedback form.
type FeedbackDraft struct {
	Email   string `json:"email"`
	Message string `json:"message"`
	Rating  int    `json:"rating"`
}

// EmptyFeedbackDraft returns the draft's reset state.
func EmptyFeedbackDraft() FeedbackDraft {
	return FeedbackDraft{Rating: 5}
}
