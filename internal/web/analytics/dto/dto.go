// Package dto request/response shapes of analytics.
package dto

// TrackRequest is the caller-supplied part of an event; user-agent,
// source IP and referrer come from the request envelope instead.
type TrackRequest struct {
	Type        string         `json:"type" binding:"required"`
	PostID      string         `json:"postId"`
	Page        string         `json:"page" binding:"required"`
	Action      string         `json:"action"`
	SearchQuery string         `json:"searchQuery"`
	Duration    int            `json:"duration"`
	Metadata    map[string]any `json:"metadata"`
}

// Overview time-windowed event counts for the dashboard.
type Overview struct {
	TotalViews          int64 `json:"totalViews"`
	ViewsLast30Days     int64 `json:"viewsLast30Days"`
	ViewsLast7Days      int64 `json:"viewsLast7Days"`
	ViewsLast24Hours    int64 `json:"viewsLast24Hours"`
	PostViews           int64 `json:"postViews"`
	PostViewsLast30Days int64 `json:"postViewsLast30Days"`
	UserActions         int64 `json:"userActions"`
	Searches            int64 `json:"searches"`
}

// GroupCount one aggregation bucket: the grouped key and its count.
type GroupCount struct {
	Key   string `bson:"_id" json:"_id"`
	Count int64  `bson:"count" json:"count"`
}

// ViewCount one aggregation bucket counted as views.
type ViewCount struct {
	Key   string `bson:"_id" json:"_id"`
	Views int64  `bson:"views" json:"views"`
}

// Dashboard the admin dashboard payload.
type Dashboard struct {
	Overview     Overview      `json:"overview"`
	TopPosts     []*ViewCount  `json:"topPosts"`
	TopPages     []*ViewCount  `json:"topPages"`
	DeviceStats  []*GroupCount `json:"deviceStats"`
	CountryStats []*GroupCount `json:"countryStats"`
	DailyViews   []*ViewCount  `json:"dailyViews"`
}

// PostAnalytics the per-post analytics payload.
type PostAnalytics struct {
	ViewsOverTime []*ViewCount  `json:"viewsOverTime"`
	Engagement    []*GroupCount `json:"engagement"`
	Referrers     []*GroupCount `json:"referrers"`
}
