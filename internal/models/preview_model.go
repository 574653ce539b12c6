package models

type TokenKind string

const (
	TokenText    TokenKind = "text"
	TokenHashtag TokenKind = "hashtag"
)

type Token struct {
	Kind  TokenKind `json:"kind"`
	Value string    `json:"value"`
}

type MediaLayoutKind string

const (
	LayoutNone   MediaLayoutKind = "none"
	LayoutSingle MediaLayoutKind = "single"
	LayoutPair   MediaLayoutKind = "pair"
	LayoutGrid   MediaLayoutKind = "grid"
)

type MediaTile struct {
	MediaID    string    `json:"media_id"`
	Kind       MediaKind `json:"kind"`
	SourceData string    `json:"source_data"`
	Enlarged   bool      `json:"enlarged"`
	Overlay    string    `json:"overlay,omitempty"`
}

type MediaLayout struct {
	Kind  MediaLayoutKind `json:"kind"`
	Tiles []MediaTile     `json:"tiles"`
}

type PreviewCard struct {
	PageID         string      `json:"page_id"`
	PageName       string      `json:"page_name"`
	AvatarInitial  string      `json:"avatar_initial"`
	TimestampLabel string      `json:"timestamp_label"`
	Body           []Token     `json:"body"`
	Hashtags       []Token     `json:"hashtags"`
	Media          MediaLayout `json:"media"`
}

type Preview struct {
	PageCount    int           `json:"page_count"`
	Header       string        `json:"header"`
	Cards        []PreviewCard `json:"cards"`
	MoreCount    int           `json:"more_count"`
	MoreLabel    string        `json:"more_label,omitempty"`
	EmptyMessage string        `json:"empty_message,omitempty"`
}
