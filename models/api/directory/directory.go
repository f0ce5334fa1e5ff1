package directoryapimodels

import (
	"iga-backend/models"
)

type EmployeesSyncRequest struct {
	Target models.SyncTarget `json:"target"`
}

func (r *EmployeesSyncRequest) Validate() error {
	if r.Target == "" {
		r.Target = models.SyncAll
	}
	if !r.Target.IsValid() {
		return models.ValidationError("unsupported sync target %q", r.Target)
	}
	return nil
}

type EmployeesSyncResult struct {
	Target              models.SyncTarget   `json:"target"`
	Fetched             int                 `json:"fetched"`
	Deleted             int64               `json:"deleted"`
	MirroredWorkerTypes []models.WorkerType `json:"mirrored_worker_types"`
}

type SlackSyncResult struct {
	TotalSlackUsersByEmail int `json:"total_slack_users_by_email"`
	UpdatedEmployees       int `json:"updated_employees"`
}

type EmployeeFilter struct {
	Search     string            `query:"search"`
	WorkerType models.WorkerType `query:"worker_type"`
	Department string            `query:"department"`
}
