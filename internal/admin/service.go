package admin

import (
	"context"

	"github.com/mehmetcc/folio/internal/person"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Counter is satisfied by every repository that can report its row count.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type Counters struct {
	Projects        Counter
	Blogs           Counter
	Certifications  Counter
	ContactMessages Counter
	Users           Counter
}

type Dashboard struct {
	ProjectsCount        int64 `json:"projects_count"`
	BlogsCount           int64 `json:"blogs_count"`
	CertificationsCount  int64 `json:"certifications_count"`
	ContactMessagesCount int64 `json:"contact_messages_count"`
	UsersCount           int64 `json:"users_count"`
}

type AdminService interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	Users(ctx context.Context) ([]person.Person, error)
	ToggleAdmin(ctx context.Context, id int64) (*person.Person, error)
}

type adminService struct {
	counters   Counters
	personRepo person.PersonRepo
	logger     *zap.Logger
}

func NewAdminService(counters Counters, personRepo person.PersonRepo, logger *zap.Logger) AdminService {
	return &adminService{
		counters:   counters,
		personRepo: personRepo,
		logger:     logger,
	}
}

func (a *adminService) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)
	for _, c := range []struct {
		counter Counter
		dst     *int64
	}{
		{a.counters.Projects, &d.ProjectsCount},
		{a.counters.Blogs, &d.BlogsCount},
		{a.counters.Certifications, &d.CertificationsCount},
		{a.counters.ContactMessages, &d.ContactMessagesCount},
		{a.counters.Users, &d.UsersCount},
	} {
		g.Go(func() error {
			n, err := c.counter.Count(ctx)
			if err != nil {
				return err
			}
			*c.dst = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		a.logger.Error("failed to build dashboard", zap.Error(err))
		return nil, err
	}
	return &d, nil
}

func (a *adminService) Users(ctx context.Context) ([]person.Person, error) {
	return a.personRepo.List(ctx)
}

func (a *adminService) ToggleAdmin(ctx context.Context, id int64) (*person.Person, error) {
	return a.personRepo.ToggleAdmin(ctx, id)
}
