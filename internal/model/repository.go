package model

// Root entry types as reported by the provider's tree objects.
const (
	EntryTypeFile      = "blob"
	EntryTypeDirectory = "tree"
)

// RootEntry is a single file or directory at the top level of a repository's
// default branch. TextContent is set only for file entries whose content was
// fetched as a text blob.
type RootEntry struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	TextContent *string `json:"textContent,omitempty"`
}

// IsFile reports whether the entry is a file.
func (e RootEntry) IsFile() bool {
	return e.Type == EntryTypeFile
}

// RepositoryMetadata is the normalized form of a repository as returned by
// the remote provider. Nullable provider fields stay pointers so absent and
// empty values remain distinguishable.
type RepositoryMetadata struct {
	Name            string      `json:"name"`
	Description     *string     `json:"description"`
	URL             string      `json:"url"`
	IsPrivate       bool        `json:"isPrivate"`
	PrimaryLanguage *string     `json:"primaryLanguage"`
	StarCount       int         `json:"starCount"`
	ForkCount       int         `json:"forkCount"`
	RootEntries     []RootEntry `json:"rootEntries"`
}
