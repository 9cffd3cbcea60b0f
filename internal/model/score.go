package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// ReadmeContentScore breaks the README content analysis down into its seven
// components. Total is always the arithmetic sum of the seven.
type ReadmeContentScore struct {
	QuickPresentation   int `json:"quickPresentation"`
	Badges              int `json:"badges"`
	InstallationSection int `json:"installationSection"`
	UsageSection        int `json:"usageSection"`
	GoalSection         int `json:"goalSection"`
	RoadmapSection      int `json:"roadmapSection"`
	LicenceSection      int `json:"licenceSection"`
	Total               int `json:"total"`
}

// QualityScore is the structured score computed for a single repository.
// TotalScore is always RepositoryName + ReadmeExists + ReadmeContent.Total +
// LicenseFile, never assigned independently.
type QualityScore struct {
	RepositoryName int                `json:"repositoryName"`
	ReadmeExists   int                `json:"readmeExists"`
	ReadmeContent  ReadmeContentScore `json:"readmeContent"`
	LicenseFile    int                `json:"licenseFile"`
	TotalScore     int                `json:"totalScore"`
}

// ScannedRepository pairs the projection of a repository's metadata with its
// computed quality score. ID is zero until the row is persisted.
type ScannedRepository struct {
	ID              int64        `json:"id,omitempty"`
	Name            string       `json:"name"`
	Description     *string      `json:"description"`
	URL             string       `json:"url"`
	IsPrivate       bool         `json:"isPrivate"`
	PrimaryLanguage *string      `json:"primaryLanguage"`
	StarCount       int          `json:"starCount"`
	ForkCount       int          `json:"forkCount"`
	Score           QualityScore `json:"score"`
	ScannedAt       time.Time    `json:"scannedAt"`
}

// ScanResult is the outcome of one full account scan. ID and SessionID are
// assigned by the persistence layer.
type ScanResult struct {
	ID                   int64               `json:"id,omitempty"`
	SessionID            string              `json:"sessionId,omitempty"`
	AccountHandle        string              `json:"accountHandle"`
	TotalRepositoryCount int                 `json:"totalRepositoryCount"`
	Repositories         []ScannedRepository `json:"repositories"`
	ScannedAt            time.Time           `json:"scannedAt"`
}

// ScanResultToJson renders a scan result as indented JSON.
func ScanResultToJson(result *ScanResult) ([]byte, error) {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scan result to JSON: %w", err)
	}

	return jsonData, nil
}
