package scoring

import (
	"regexp"
	"strings"

	"github.com/mathis-deconchat/github-repo-qualifier/internal/model"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// analyzeReadme scores the text of a README that was fetched. Section
// detection is heading-based only; keyword hits in the body do not count.
func analyzeReadme(content string) model.ReadmeContentScore {
	var score model.ReadmeContentScore

	if len(content) > quickPresentationMinLength {
		score.QuickPresentation = quickPresentationPoints
	}
	if hasBadge(content) {
		score.Badges = badgesPoints
	}
	if hasHeading(content, "install") {
		score.InstallationSection = installationSectionPoints
	}
	if hasHeading(content, "usage") {
		score.UsageSection = usageSectionPoints
	}
	if hasHeading(content, "goal") {
		score.GoalSection = goalSectionPoints
	}
	if hasHeading(content, "roadmap") {
		score.RoadmapSection = roadmapSectionPoints
	}
	if hasHeading(content, "licen") {
		score.LicenceSection = licenceSectionPoints
	}

	score.Total = score.QuickPresentation + score.Badges + score.InstallationSection +
		score.UsageSection + score.GoalSection + score.RoadmapSection + score.LicenceSection
	return score
}

// hasHeading reports whether content contains a markdown heading (one or
// more '#' at the start of a line) whose text contains keyword,
// case-insensitively.
func hasHeading(content, keyword string) bool {
	pattern := regexp.MustCompile(`(?im)^#+[^\n]*` + regexp.QuoteMeta(keyword))
	return pattern.MatchString(content)
}

// hasBadge reports whether content references an inline image or a
// shields.io style badge URL.
func hasBadge(content string) bool {
	if strings.Contains(strings.ToLower(content), "shields.io") {
		return true
	}

	source := []byte(content)
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	found := false
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if _, ok := n.(*ast.Image); ok {
			found = true
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}
