package store

import (
	_ "embed"
	"sync"

	"gopkg.in/yaml.v3"

	"staffsync/internal/models"
)

// seedUsers is the baked-in roster used when no persisted roster exists or
// the persisted one is empty.
func seedUsers() []models.User {
	return []models.User{
		{ID: "usr-1", Name: "Emil Shalamberidze", Email: "emil@example.com", Role: "Admin"},
		{ID: "usr-2", Name: "Sofia Conti", Email: "sofia@staffsync.demo", Role: "Manager"},
		{ID: "usr-3", Name: "Marco Bianchi", Email: "marco@staffsync.demo", Role: "Staff"},
		{ID: "usr-4", Name: "Ava Rossi", Email: "ava@staffsync.demo", Role: "Staff"},
	}
}

//go:embed seed_sops.yaml
var seedSOPBytes []byte

var (
	seedSOPOnce sync.Once
	seedSOPList []models.SOP
)

type seedSOP struct {
	ID       string `yaml:"id"`
	TaskName string `yaml:"taskName"`
	Category string `yaml:"category"`
	Poster   string `yaml:"poster"`
	Duration string `yaml:"duration"`
	Video    string `yaml:"video"`
	StepsEN  string `yaml:"stepsEn"`
	StepsIT  string `yaml:"stepsIt"`
	StepsES  string `yaml:"stepsEs"`
}

// seedSOPs returns a fresh copy of the baseline SOP records so callers can
// mutate their slice freely.
func seedSOPs() []models.SOP {
	seedSOPOnce.Do(func() {
		var raw []seedSOP
		if err := yaml.Unmarshal(seedSOPBytes, &raw); err != nil {
			return
		}
		for _, r := range raw {
			video := r.Video
			if video == "" {
				video = DefaultVideoURL
			}
			seedSOPList = append(seedSOPList, models.SOP{
				ID:       r.ID,
				TaskName: r.TaskName,
				Category: r.Category,
				Poster:   r.Poster,
				Duration: r.Duration,
				Video:    models.SOPVideo{URL: video},
				Steps:    models.SOPSteps{EN: r.StepsEN, IT: r.StepsIT, ES: r.StepsES},
			})
		}
	})
	out := make([]models.SOP, len(seedSOPList))
	copy(out, seedSOPList)
	return out
}
