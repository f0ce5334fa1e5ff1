package auditloghandler

import (
	"iga-backend/db"
	auditlogstore "iga-backend/lib/audit-log/store"
	"iga-backend/lib/utils/helpers"
	"iga-backend/models"
	auditapimodels "iga-backend/models/api/audit"
	dbmodels "iga-backend/models/db"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Write(entry auditapimodels.AuditEntry) error
	List(filter auditapimodels.AuditLogFilter) (list []auditapimodels.AuditLogView, rowCount int64, err error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB)
}

func NewInstance(DB *gorm.DB) Provider {
	return impl{
		store: auditlogstore.NewInstance(DB),
	}
}

// NewHandlerWithTx writes entries in the caller's transaction.
func NewHandlerWithTx(tx *gorm.DB) Provider {
	return NewInstance(tx)
}

type impl struct {
	store auditlogstore.Provider
}

func (i impl) Write(entry auditapimodels.AuditEntry) error {
	actor := entry.ActorEmail
	if actor != models.SystemActor {
		actor = helpers.NormalizeEmail(actor)
	}
	rec := dbmodels.AuditLog{
		ActorEmail: actor,
		Action:     entry.Action,
		TargetUser: helpers.NormalizeEmail(entry.TargetUser),
		AssetName:  entry.AssetName,
		Decision:   entry.Decision,
		Metadata:   dbmodels.JSONMap(entry.Metadata),
	}
	id, err := i.store.Create(rec)
	if err != nil {
		log.
			WithError(err).
			WithField("action", entry.Action).
			Error("audit entry not written")
		return err
	}
	log.
		WithField("audit_id", id).
		WithField("action", entry.Action).
		Debug("audit entry written")
	return nil
}

func (i impl) List(filter auditapimodels.AuditLogFilter) (list []auditapimodels.AuditLogView, rowCount int64, err error) {
	recList, rowCount, err := i.store.List(filter)
	if err != nil {
		return nil, 0, err
	}
	list = make([]auditapimodels.AuditLogView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, auditapimodels.AuditLogConvert(rec))
	}
	return list, rowCount, nil
}
