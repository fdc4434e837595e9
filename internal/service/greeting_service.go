package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/himarpl/himarpl-api/internal/models"
	appErrors "github.com/himarpl/himarpl-api/pkg/errors"
)

// AllowedLanguages lists the greeting languages.
var AllowedLanguages = []string{models.LanguageEN, models.LanguageES, models.LanguageFR}

// greetingNotFoundID is the identifier that always resolves to a missing greeting.
const greetingNotFoundID = "notfound"

// CreateGreetingRequest is the POST payload.
type CreateGreetingRequest struct {
	Name     string                 `json:"name" validate:"required"`
	Language string                 `json:"language" validate:"required,oneof=en es fr"`
	Metadata map[string]interface{} `json:"metadata"`
}

// UpdateGreetingRequest is the PUT payload; every field is optional.
type UpdateGreetingRequest struct {
	Language string                 `json:"language" validate:"omitempty,oneof=en es fr"`
	Metadata map[string]interface{} `json:"metadata"`
}

// GreetingService synthesizes greetings. Nothing is persisted.
type GreetingService struct {
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

// NewGreetingService creates a greeting service.
func NewGreetingService(validate *validator.Validate, logger *zap.Logger) *GreetingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GreetingService{validator: validate, logger: logger, now: time.Now, newID: uuid.NewString}
}

// Greet builds the welcome message, personalized when name is set.
func (s *GreetingService) Greet(_ context.Context, name string) models.Greeting {
	message := "Hello, welcome to HIMARPL API!"
	if name != "" {
		message = fmt.Sprintf("Hello %s, welcome to HIMARPL API!", name)
	}
	return s.build(message, models.LanguageEN, nil)
}

// Create validates the payload and returns the greeting with a fresh identifier.
func (s *GreetingService) Create(_ context.Context, req CreateGreetingRequest) (models.Greeting, string, error) {
	if err := s.validate(req); err != nil {
		return models.Greeting{}, "", err
	}
	greeting := s.build(fmt.Sprintf("Hello %s, welcome to HIMARPL API!", req.Name), req.Language, req.Metadata)
	id := s.newID()
	s.logger.Debug("greeting created", zap.String("id", id), zap.String("language", req.Language))
	return greeting, id, nil
}

// Update validates the payload before checking that id exists.
func (s *GreetingService) Update(_ context.Context, id string, req UpdateGreetingRequest) (models.Greeting, error) {
	if id == "" {
		return models.Greeting{}, missingGreetingID()
	}
	if err := s.validate(req); err != nil {
		return models.Greeting{}, err
	}
	if id == greetingNotFoundID {
		return models.Greeting{}, greetingNotFound()
	}
	language := req.Language
	if language == "" {
		language = models.LanguageEN
	}
	return s.build("Updated greeting message", language, req.Metadata), nil
}

// Delete removes a greeting.
func (s *GreetingService) Delete(_ context.Context, id string) error {
	if id == "" {
		return missingGreetingID()
	}
	if id == greetingNotFoundID {
		return greetingNotFound()
	}
	s.logger.Debug("greeting deleted", zap.String("id", id))
	return nil
}

// build merges caller metadata over the defaults; caller keys win.
func (s *GreetingService) build(message, language string, extra map[string]interface{}) models.Greeting {
	metadata := map[string]interface{}{
		"language": language,
		"version":  models.GreetingVersion,
	}
	for k, v := range extra {
		metadata[k] = v
	}
	return models.Greeting{
		Message:   message,
		Timestamp: models.FormatTimestamp(s.now()),
		Metadata:  metadata,
	}
}

func (s *GreetingService) validate(req interface{}) error {
	err := s.validator.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return appErrors.Wrap(err, appErrors.CodeInternal, "failed to validate greeting")
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return appErrors.Clone(appErrors.ErrInvalidParameters, "Missing required fields").
				WithDetails("required", []string{"name", "language"})
		}
	}
	return appErrors.Clone(appErrors.ErrInvalidParameters, "Invalid language code").
		WithDetails("allowed_languages", AllowedLanguages)
}

func missingGreetingID() error {
	return appErrors.Clone(appErrors.ErrInvalidParameters, "Missing greeting ID")
}

func greetingNotFound() error {
	return appErrors.Clone(appErrors.ErrNotFound, "Greeting not found")
}
