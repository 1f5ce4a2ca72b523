// Package seed loads the default teams into an empty store.
package seed

import (
	"context"
	"fmt"

	"team-vote/internal/domain"
	"team-vote/internal/service"
)

func image(path string) *string { return &path }

// DefaultTeams are the two teams the ballot opens with
var DefaultTeams = []domain.CreateTeamRequest{
	{
		Name:        "Visionary Leaders",
		Description: "Experienced leadership team focused on academic excellence and student welfare",
		Vision: "Creating an inclusive educational environment that fosters academic achievement, " +
			"personal growth, and community engagement through innovative programs and student-centered initiatives.",
		Leader:   "Sarah Johnson",
		CoLeader: "Michael Chen",
		Image:    image("/uploads/image_1766455914470.png"),
	},
	{
		Name:        "Future Forward",
		Description: "Dynamic team committed to sustainability, athletics, and campus improvement",
		Vision: "Building a sustainable future for our school through environmental stewardship, " +
			"athletic excellence, and facility improvements that benefit all students.",
		Leader:   "Emily Rodriguez",
		CoLeader: "James Wilson",
		Image:    image("/uploads/image_1766455926730.png"),
	},
}

// Teams creates every team in teams whose name is not already present and
// returns how many were created. Running it twice is harmless.
func Teams(ctx context.Context, svc service.TeamService, teams []domain.CreateTeamRequest) (int, error) {
	existing, err := svc.ListTeams(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list teams: %w", err)
	}

	names := make(map[string]bool, len(existing))
	for _, team := range existing {
		names[team.Name] = true
	}

	created := 0
	for i := range teams {
		if names[teams[i].Name] {
			continue
		}
		if _, err := svc.CreateTeam(ctx, &teams[i]); err != nil {
			return created, fmt.Errorf("failed to seed team %q: %w", teams[i].Name, err)
		}
		names[teams[i].Name] = true
		created++
	}
	return created, nil
}
