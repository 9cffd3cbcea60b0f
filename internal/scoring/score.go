package scoring

import (
	"strings"

	"github.com/mathis-deconchat/github-repo-qualifier/internal/model"
)

// Point budgets for each scoring criterion.
const (
	repositoryNamePoints = 20
	readmeExistsPoints   = 10
	licenseFilePoints    = 20

	quickPresentationPoints   = 10
	badgesPoints              = 10
	installationSectionPoints = 8
	usageSectionPoints        = 8
	goalSectionPoints         = 7
	roadmapSectionPoints      = 7
	licenceSectionPoints      = 10

	quickPresentationMinLength = 50
)

// penalizedNameParts disqualify a repository name from any naming points.
var penalizedNameParts = []string{"test", "boilerplate", "starter"}

// ScoreRepository computes the quality score for a single repository. It is
// deterministic and total: absent signals score zero, it never fails.
func ScoreRepository(repo model.RepositoryMetadata) model.QualityScore {
	var score model.QualityScore

	score.RepositoryName = scoreRepositoryName(repo.Name)

	if readme, found := findReadme(repo.RootEntries); found && readme.TextContent != nil {
		score.ReadmeExists = readmeExistsPoints
		score.ReadmeContent = analyzeReadme(*readme.TextContent)
	}

	if hasLicenseFile(repo.RootEntries) {
		score.LicenseFile = licenseFilePoints
	}

	score.TotalScore = score.RepositoryName + score.ReadmeExists + score.ReadmeContent.Total + score.LicenseFile
	return score
}

// scoreRepositoryName is all-or-nothing: any penalized substring in the
// lowercased name forfeits the full budget.
func scoreRepositoryName(name string) int {
	lower := strings.ToLower(name)
	for _, part := range penalizedNameParts {
		if strings.Contains(lower, part) {
			return 0
		}
	}
	return repositoryNamePoints
}

// findReadme scans the root entries for a file named readme.md or readme,
// case-insensitively.
func findReadme(entries []model.RootEntry) (model.RootEntry, bool) {
	for _, entry := range entries {
		if !entry.IsFile() {
			continue
		}
		name := strings.ToLower(entry.Name)
		if name == "readme.md" || name == "readme" {
			return entry, true
		}
	}
	return model.RootEntry{}, false
}

// hasLicenseFile reports whether the root contains a license file. Presence
// alone suffices, content is never inspected.
func hasLicenseFile(entries []model.RootEntry) bool {
	for _, entry := range entries {
		if !entry.IsFile() {
			continue
		}
		name := strings.ToLower(entry.Name)
		if strings.HasPrefix(name, "license") || strings.HasPrefix(name, "licence") {
			return true
		}
	}
	return false
}
