package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"meetingreg/internal/domain"
	"meetingreg/internal/state"
)

// nameRegex allows Hangul syllables and Latin letters only, no whitespace,
// digits, or symbols.
var nameRegex = regexp.MustCompile(`^[a-zA-Z가-힣]+$`)

var digitsRegex = regexp.MustCompile(`^[0-9]+$`)

// phoneLengths maps an area-code prefix to the allowed digit count
// (inclusive min..max). Mobile 010 numbers are always 11 digits; Seoul 02
// numbers are shorter than other regional codes.
var phoneLengths = []struct {
	prefix   string
	min, max int
}{
	{"010", 11, 11},
	{"011", 10, 11},
	{"016", 10, 11},
	{"017", 10, 11},
	{"018", 10, 11},
	{"019", 10, 11},
	{"02", 9, 10},
}

// SubmissionRecorder counts submission attempts by kind and outcome.
type SubmissionRecorder interface {
	RecordSubmission(kind, outcome string)
}

// NopSubmissionRecorder is a SubmissionRecorder that does nothing.
type NopSubmissionRecorder struct{}

func (NopSubmissionRecorder) RecordSubmission(kind, outcome string) {}

type registrationService struct {
	store    *state.RecordStore
	settings domain.SettingsService
	logger   *slog.Logger
	recorder SubmissionRecorder
}

// NewRegistrationService creates a RegistrationService over the record cache.
// Duplicate checks run against the cache, not storage, so a submission
// immediately after another sees the optimistic state.
func NewRegistrationService(
	store *state.RecordStore,
	settings domain.SettingsService,
	logger *slog.Logger,
	recorder SubmissionRecorder,
) domain.RegistrationService {
	return &registrationService{
		store:    store,
		settings: settings,
		logger:   logger,
		recorder: recorder,
	}
}

// messages returns the settings document for localized prompts, degrading to
// the defaults when even the fallback store cannot serve it. Validation must
// not fail just because the CMS is unreachable.
func (s *registrationService) messages(ctx context.Context) *domain.Settings {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "settings unavailable, using defaults", "err", err)
		return domain.DefaultSettings()
	}
	return settings
}

// normalizePhone strips separators commonly typed into phone fields. The
// result must still be digit-only to pass validation.
func normalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	phone = strings.ReplaceAll(phone, "-", "")
	phone = strings.ReplaceAll(phone, " ", "")
	return phone
}

func validPhone(phone string) bool {
	if !digitsRegex.MatchString(phone) {
		return false
	}
	for _, pl := range phoneLengths {
		if strings.HasPrefix(phone, pl.prefix) {
			return len(phone) >= pl.min && len(phone) <= pl.max
		}
	}
	// Other regional codes (031, 051, ...).
	return len(phone) >= 9 && len(phone) <= 11
}

// validate checks the common identity fields. It returns a localized
// ValidationError and touches no storage on failure. The normalized phone is
// returned for use as the identity key.
func (s *registrationService) validate(req domain.SubmissionRequest, msgs *domain.Settings) (string, *domain.ValidationError) {
	name := strings.TrimSpace(req.Name)
	if utf8.RuneCountInString(name) < 2 || !nameRegex.MatchString(name) {
		return "", domain.NewValidationError("name", msgs.MsgNameValidationError)
	}
	phone := normalizePhone(req.Phone)
	if phone == "" || !validPhone(phone) {
		return "", domain.NewValidationError("phone", msgs.MsgPhoneValidationError)
	}
	if !req.AgreedToPolicy {
		return "", domain.NewValidationError("agreed_to_policy", msgs.MsgPrivacyError)
	}
	return phone, nil
}

func (s *registrationService) SubmitAttend(ctx context.Context, req domain.SubmissionRequest) (*domain.SubmitResult, *domain.Conflict, error) {
	msgs := s.messages(ctx)
	phone, verr := s.validate(req, msgs)
	if verr != nil {
		s.recorder.RecordSubmission("attend", "validation_error")
		return nil, nil, verr
	}

	existing, found := s.store.FindByPhone(phone)
	if found && !req.Confirmed {
		s.recorder.RecordSubmission("attend", "conflict")
		return nil, &domain.Conflict{
			ExistingKind: existing.Kind,
			Prompt:       msgs.MsgDuplicateAttendConfirm,
		}, nil
	}

	// Reuse the existing ID so the phone number maps to at most one record.
	// The name is taken from the new input: last submission wins.
	id := uuid.NewString()
	if found {
		id = existing.ID
	}
	record := domain.NewAttendRecord(id, strings.TrimSpace(req.Name), phone, time.Now())

	if err := s.store.Add(ctx, record); err != nil {
		s.recorder.RecordSubmission("attend", "storage_error")
		return nil, nil, fmt.Errorf("submit attend: %w", err)
	}

	if found {
		s.recorder.RecordSubmission("attend", "updated")
	} else {
		s.recorder.RecordSubmission("attend", "created")
	}
	return &domain.SubmitResult{Record: record, Created: !found}, nil, nil
}

func (s *registrationService) BeginProxy(ctx context.Context, req domain.SubmissionRequest) (*domain.ProxyDraft, *domain.Conflict, error) {
	msgs := s.messages(ctx)
	phone, verr := s.validate(req, msgs)
	if verr != nil {
		s.recorder.RecordSubmission("proxy", "validation_error")
		return nil, nil, verr
	}

	if existing, found := s.store.FindByPhone(phone); found && !req.Confirmed {
		prompt := msgs.MsgDuplicateProxyConfirmFromProxy
		if existing.Kind == domain.KindAttend {
			prompt = msgs.MsgDuplicateProxyConfirmFromAttend
		}
		s.recorder.RecordSubmission("proxy", "conflict")
		return nil, &domain.Conflict{ExistingKind: existing.Kind, Prompt: prompt}, nil
	}

	// Nothing is persisted yet; the draft carries the identity into the
	// proxy-authoring stage.
	return &domain.ProxyDraft{Name: strings.TrimSpace(req.Name), Phone: phone}, nil, nil
}

func (s *registrationService) CompleteProxy(ctx context.Context, sub domain.ProxySubmission) (*domain.SubmitResult, error) {
	msgs := s.messages(ctx)
	phone, verr := s.validate(domain.SubmissionRequest{
		Name:           sub.Draft.Name,
		Phone:          sub.Draft.Phone,
		AgreedToPolicy: true,
	}, msgs)
	if verr != nil {
		s.recorder.RecordSubmission("proxy", "validation_error")
		return nil, verr
	}

	if sub.Signature == "" {
		s.recorder.RecordSubmission("proxy", "validation_error")
		return nil, domain.NewValidationError("signature", msgs.MsgSignatureError)
	}

	var delegateName string
	switch sub.DelegateKind {
	case domain.DelegatePresident:
		delegateName = domain.PresidentDelegateName
	case domain.DelegateOther:
		delegateName = strings.TrimSpace(sub.DelegateName)
		if delegateName == "" {
			s.recorder.RecordSubmission("proxy", "validation_error")
			return nil, domain.NewValidationError("delegate_name", msgs.MsgProxyNameError)
		}
	default:
		s.recorder.RecordSubmission("proxy", "validation_error")
		return nil, domain.NewValidationError("delegate_kind", "delegate_kind must be PRESIDENT or OTHER")
	}

	existing, found := s.store.FindByPhone(phone)
	id := uuid.NewString()
	if found {
		id = existing.ID
	}
	record := domain.NewProxyRecord(id, strings.TrimSpace(sub.Draft.Name), phone,
		sub.DelegateKind, delegateName, sub.Signature, time.Now())

	if err := s.store.Add(ctx, record); err != nil {
		s.recorder.RecordSubmission("proxy", "storage_error")
		return nil, fmt.Errorf("submit proxy: %w", err)
	}

	if found {
		s.recorder.RecordSubmission("proxy", "updated")
	} else {
		s.recorder.RecordSubmission("proxy", "created")
	}
	return &domain.SubmitResult{Record: record, Created: !found}, nil
}

func (s *registrationService) Records(ctx context.Context) []*domain.Record {
	return s.store.Records()
}

func (s *registrationService) RemoveRecords(ctx context.Context, ids []string) error {
	if err := s.store.RemoveMany(ctx, ids); err != nil {
		return fmt.Errorf("remove records: %w", err)
	}
	return nil
}

func (s *registrationService) ClearRecords(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	return nil
}

func (s *registrationService) Refresh(ctx context.Context) error {
	if err := s.store.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh records: %w", err)
	}
	return nil
}
