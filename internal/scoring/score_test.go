package scoring

import (
	"reflect"
	"testing"

	"github.com/mathis-deconchat/github-repo-qualifier/internal/model"
)

func strPtr(s string) *string {
	return &s
}

func fileEntry(name string, content *string) model.RootEntry {
	return model.RootEntry{Name: name, Type: model.EntryTypeFile, TextContent: content}
}

const richReadme = `# My Project

[![build](https://img.shields.io/badge/build-passing-green)](https://example.com)

This project does a lot of interesting things and this sentence pushes the text well past fifty characters.

## Installation

Run the installer.

## Usage

Call the binary.

## License

MIT
`

func TestScoreRepository(t *testing.T) {
	tests := []struct {
		name string
		repo model.RepositoryMetadata
		want model.QualityScore
	}{
		{
			name: "good name with no root entries",
			repo: model.RepositoryMetadata{Name: "awesome-project"},
			want: model.QualityScore{RepositoryName: 20, TotalScore: 20},
		},
		{
			name: "penalized name",
			repo: model.RepositoryMetadata{
				Name: "test-project",
				RootEntries: []model.RootEntry{
					fileEntry("LICENSE", nil),
				},
			},
			want: model.QualityScore{RepositoryName: 0, LicenseFile: 20, TotalScore: 20},
		},
		{
			name: "license file any case without content",
			repo: model.RepositoryMetadata{
				Name: "scanner",
				RootEntries: []model.RootEntry{
					fileEntry("License.md", nil),
				},
			},
			want: model.QualityScore{RepositoryName: 20, LicenseFile: 20, TotalScore: 40},
		},
		{
			name: "british licence spelling",
			repo: model.RepositoryMetadata{
				Name: "scanner",
				RootEntries: []model.RootEntry{
					fileEntry("LICENCE", nil),
				},
			},
			want: model.QualityScore{RepositoryName: 20, LicenseFile: 20, TotalScore: 40},
		},
		{
			name: "license directory does not count",
			repo: model.RepositoryMetadata{
				Name: "scanner",
				RootEntries: []model.RootEntry{
					{Name: "LICENSE", Type: model.EntryTypeDirectory},
				},
			},
			want: model.QualityScore{RepositoryName: 20, TotalScore: 20},
		},
		{
			name: "readme entry without fetched content",
			repo: model.RepositoryMetadata{
				Name: "scanner",
				RootEntries: []model.RootEntry{
					fileEntry("README.md", nil),
				},
			},
			want: model.QualityScore{RepositoryName: 20, TotalScore: 20},
		},
		{
			name: "empty readme text still counts as existing",
			repo: model.RepositoryMetadata{
				Name: "scanner",
				RootEntries: []model.RootEntry{
					fileEntry("README.md", strPtr("")),
				},
			},
			want: model.QualityScore{RepositoryName: 20, ReadmeExists: 10, TotalScore: 30},
		},
		{
			name: "rich readme with installation usage license and badge",
			repo: model.RepositoryMetadata{
				Name: "awesome-project",
				RootEntries: []model.RootEntry{
					fileEntry("README.md", strPtr(richReadme)),
				},
			},
			want: model.QualityScore{
				RepositoryName: 20,
				ReadmeExists:   10,
				ReadmeContent: model.ReadmeContentScore{
					QuickPresentation:   10,
					Badges:              10,
					InstallationSection: 8,
					UsageSection:        8,
					LicenceSection:      10,
					Total:               46,
				},
				TotalScore: 76,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreRepository(tt.repo)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ScoreRepository() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestScoreRepositoryTotalIsAlwaysTheSum(t *testing.T) {
	repos := []model.RepositoryMetadata{
		{Name: "awesome-project"},
		{Name: "starter-kit", RootEntries: []model.RootEntry{fileEntry("LICENSE", nil)}},
		{Name: "scanner", RootEntries: []model.RootEntry{
			fileEntry("readme.md", strPtr(richReadme)),
			fileEntry("license", nil),
		}},
	}

	for _, repo := range repos {
		got := ScoreRepository(repo)
		sum := got.RepositoryName + got.ReadmeExists + got.ReadmeContent.Total + got.LicenseFile
		if got.TotalScore != sum {
			t.Errorf("%s: totalScore = %d, want sum of components %d", repo.Name, got.TotalScore, sum)
		}
		if got.TotalScore < 0 || got.TotalScore > 100 {
			t.Errorf("%s: totalScore %d outside [0,100]", repo.Name, got.TotalScore)
		}
	}
}

func TestScoreRepositoryIsIdempotent(t *testing.T) {
	repo := model.RepositoryMetadata{
		Name: "awesome-project",
		RootEntries: []model.RootEntry{
			fileEntry("README.md", strPtr(richReadme)),
			fileEntry("LICENSE", nil),
		},
	}

	first := ScoreRepository(repo)
	second := ScoreRepository(repo)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("scoring twice diverged: %+v vs %+v", first, second)
	}
}

func TestScoreRepositoryName(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"awesome-project", 20},
		{"test-project", 0},
		{"MyTestRepo", 0},
		{"react-boilerplate", 0},
		{"vue-STARTER", 0},
		{"qualifier", 20},
	}

	for _, tt := range tests {
		if got := scoreRepositoryName(tt.name); got != tt.want {
			t.Errorf("scoreRepositoryName(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestHasHeading(t *testing.T) {
	tests := []struct {
		name    string
		content string
		keyword string
		want    bool
	}{
		{"simple heading", "## Installation", "install", true},
		{"deep heading", "### Quick install guide", "install", true},
		{"case insensitive", "# USAGE", "usage", true},
		{"keyword only in body", "You can install it with go get.", "install", false},
		{"hash not at line start", "see #installation anchor", "install", false},
		{"heading on later line", "intro text\n\n## Roadmap\n", "roadmap", true},
		{"licence british spelling", "## Licence", "licen", true},
		{"license american spelling", "## License", "licen", true},
		{"empty content", "", "usage", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasHeading(tt.content, tt.keyword); got != tt.want {
				t.Errorf("hasHeading(%q, %q) = %v, want %v", tt.content, tt.keyword, got, tt.want)
			}
		})
	}
}

func TestHasBadge(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"markdown image", "![build](https://example.com/badge.svg)", true},
		{"linked image", "[![cov](https://example.com/c.svg)](https://example.com)", true},
		{"shields url in plain text", "badge at https://img.shields.io/badge/x-y-z", true},
		{"plain link is not a badge", "[docs](https://example.com)", false},
		{"no image at all", "just words", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasBadge(tt.content); got != tt.want {
				t.Errorf("hasBadge(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}
