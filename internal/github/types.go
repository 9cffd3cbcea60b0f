package github

// repositoriesQuery pages through every repository owned by a user. The root
// tree is expanded one level so README-like blobs arrive with their text in
// the same round-trip.
const repositoriesQuery = `
query($login: String!, $cursor: String) {
  user(login: $login) {
    repositories(first: 100, after: $cursor, ownerAffiliations: OWNER) {
      totalCount
      pageInfo {
        hasNextPage
        endCursor
      }
      nodes {
        name
        description
        url
        isPrivate
        primaryLanguage {
          name
        }
        stargazerCount
        forkCount
        object(expression: "HEAD:") {
          ... on Tree {
            entries {
              name
              type
              object {
                ... on Blob {
                  text
                }
              }
            }
          }
        }
      }
    }
  }
}`

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// ApiError is a single application-level error from the response envelope.
type ApiError struct {
	Type    string `json:"type,omitempty"`
	Message string `json:"message"`
}

// graphqlResponse models the provider envelope with nullable nested objects
// so a missing user stays distinguishable from an empty repository list.
type graphqlResponse struct {
	Data   *responseData `json:"data"`
	Errors []ApiError    `json:"errors"`
}

type responseData struct {
	User *userNode `json:"user"`
}

type userNode struct {
	Repositories repositoryConnection `json:"repositories"`
}

type repositoryConnection struct {
	TotalCount int              `json:"totalCount"`
	PageInfo   pageInfo         `json:"pageInfo"`
	Nodes      []repositoryNode `json:"nodes"`
}

type pageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

type repositoryNode struct {
	Name            string        `json:"name"`
	Description     *string       `json:"description"`
	URL             string        `json:"url"`
	IsPrivate       bool          `json:"isPrivate"`
	PrimaryLanguage *languageNode `json:"primaryLanguage"`
	StargazerCount  int           `json:"stargazerCount"`
	ForkCount       int           `json:"forkCount"`
	Object          *treeNode     `json:"object"`
}

type languageNode struct {
	Name string `json:"name"`
}

type treeNode struct {
	Entries []treeEntry `json:"entries"`
}

type treeEntry struct {
	Name   string    `json:"name"`
	Type   string    `json:"type"`
	Object *blobNode `json:"object"`
}

type blobNode struct {
	Text *string `json:"text"`
}
