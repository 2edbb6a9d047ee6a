package config

const (
	// MaxListingTitleLength is the maximum length for listing titles.
	// Limited to 200 to fit comfortably in list views and keep
	// marketplace cards scannable.
	MaxListingTitleLength = 200

	// MaxListingBodyLength is the maximum length for listing bodies.
	// 20000 characters is generous for a classified ad or service
	// description without inviting article-length posts.
	MaxListingBodyLength = 20000

	// MaxCommentBodyLength is the maximum length for comment bodies.
	// Comments are conversational; 4000 matches typical forum limits.
	MaxCommentBodyLength = 4000
)
