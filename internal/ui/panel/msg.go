package panel

import "github.com/rflorenc/cloud-resource-workbench/internal/models"

// resCountsMsg carries the result of the one-shot resource count request.
type resCountsMsg struct {
	items []models.ResourceCount
	err   error
}
