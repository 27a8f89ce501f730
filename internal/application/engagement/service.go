package engagement

import (
	"github.com/baechuer/vidshare/internal/audit"
)

type Service struct {
	store Store
	clock Clock
	audit *audit.Logger
}

func New(store Store, clock Clock, auditLog *audit.Logger) *Service {
	if auditLog == nil {
		auditLog = audit.Nop()
	}
	return &Service{store: store, clock: clock, audit: auditLog}
}
