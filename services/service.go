package services

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Deps are the collaborators of a Service. Only Store is required.
type Deps struct {
	Store     Store
	Locker    Locker
	Publisher Publisher
	Notifier  Notifier
	Images    ImageUploader
	Logger    *logrus.Logger
	Now       func() time.Time
}

// Service implements room availability, the booking lifecycle, payments and
// room management on top of a Store.
type Service struct {
	store     Store
	locker    Locker
	publisher Publisher
	notifier  Notifier
	images    ImageUploader
	log       *logrus.Logger
	now       func() time.Time
}

func New(deps Deps) *Service {
	s := &Service{
		store:     deps.Store,
		locker:    deps.Locker,
		publisher: deps.Publisher,
		notifier:  deps.Notifier,
		images:    deps.Images,
		log:       deps.Logger,
		now:       deps.Now,
	}
	if s.locker == nil {
		s.locker = NewLocalLocker()
	}
	if s.publisher == nil {
		s.publisher = NopPublisher{}
	}
	if s.notifier == nil {
		s.notifier = NopNotifier{}
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	return s
}
