package marketing

// ConnectAccountInput carries the OAuth callback code
type ConnectAccountInput struct {
	Code string `json:"code" binding:"required"`
}

// ConnectAccountResult reports the obtained token lifetime. The token
// itself is returned once and never stored server-side.
type ConnectAccountResult struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// PublishPostInput carries the data for a page post
type PublishPostInput struct {
	AccessToken string `json:"access_token" binding:"required"`
	PageID      string `json:"page_id" binding:"required"`
	Message     string `json:"message" binding:"required"`
	Link        string `json:"link"`
}

// PostInsightsResult summarizes post engagement
type PostInsightsResult struct {
	PostID       string `json:"post_id"`
	Impressions  int64  `json:"impressions"`
	EngagedUsers int64  `json:"engaged_users"`
	Clicks       int64  `json:"clicks"`
}

// SyncLeadsInput names the lead ad form to pull submissions from
type SyncLeadsInput struct {
	AccessToken string `json:"access_token" binding:"required"`
	FormID      string `json:"form_id" binding:"required"`
}

// SyncLeadsResult reports how many submissions became pool leads
type SyncLeadsResult struct {
	Recebidos int `json:"recebidos"`
	Criados   int `json:"criados"`
	Ignorados int `json:"ignorados"`
}
