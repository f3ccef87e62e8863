package entities

// RemotePage is a Confluence page as seen by the publisher. Title is the
// natural key used for lookup; ID and Version come back from the REST API.
type RemotePage struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Version int    `json:"version"`
	Link    string `json:"link"`
}

// PublishResult is what one pipeline run produced.
type PublishResult struct {
	Minutes       *MeetingMinutes `json:"minutes"`
	HTML          string          `json:"-"`
	PageID        string          `json:"page_id,omitempty"`
	PageLink      string          `json:"page_link,omitempty"`
	LocalHTMLPath string          `json:"local_html_path,omitempty"`
	LocalJSONPath string          `json:"local_json_path,omitempty"`
}
