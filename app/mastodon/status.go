package mastodon

// Status is the subset of a Mastodon status entity the collector reads.
type Status struct {
	ID               string            `json:"id"`
	CreatedAt        string            `json:"created_at"`
	Visibility       string            `json:"visibility"`
	Content          string            `json:"content"`
	URL              string            `json:"url"`
	URI              string            `json:"uri"`
	Account          Account           `json:"account"`
	MediaAttachments []MediaAttachment `json:"media_attachments"`
	Card             *PreviewCard      `json:"card"`
}

type Account struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Acct        string `json:"acct"`
	DisplayName string `json:"display_name"`
	URL         string `json:"url"`
}

type MediaAttachment struct {
	ID         string `json:"id"`
	Type       string `json:"type"` // image, video, gifv, audio, unknown
	URL        string `json:"url"`
	PreviewURL string `json:"preview_url"`
}

type PreviewCard struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Image string `json:"image"`
}
