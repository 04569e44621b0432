package service

import (
	"strings"

	"github.com/mediantar/mediantar/internal/constants"
	"github.com/mediantar/mediantar/internal/models"
	"github.com/mediantar/mediantar/internal/repository"
)

// TemplateService per-account notification message templates
type TemplateService struct {
	templateRepo repository.TemplateRepository
}

// NewTemplateService creates a template service
func NewTemplateService(templateRepo repository.TemplateRepository) *TemplateService {
	return &TemplateService{templateRepo: templateRepo}
}

// AllowedTemplateTypes the audience types a principal may manage
func AllowedTemplateTypes(principal Principal) []string {
	if principal.IsAdmin() {
		return []string{constants.TemplateAdminToCustomer, constants.TemplateAdminToCourier}
	}
	return []string{constants.TemplateCourierToCustomer}
}

func templateTypeAllowed(principal Principal, templateType string) bool {
	for _, allowed := range AllowedTemplateTypes(principal) {
		if allowed == templateType {
			return true
		}
	}
	return false
}

// Upsert creates or replaces the principal's template for an audience type
func (s *TemplateService) Upsert(principal Principal, templateType, body string) (*models.MessageTemplate, error) {
	templateType = strings.TrimSpace(templateType)
	if !templateTypeAllowed(principal, templateType) {
		return nil, ErrTemplateTypeNotAllowed
	}
	if strings.TrimSpace(body) == "" {
		return nil, NewValidationError("body")
	}

	existing, err := s.templateRepo.GetByUserAndType(principal.UserID, templateType)
	if err != nil {
		return nil, wrapPersistence("template lookup", err)
	}
	if existing != nil {
		existing.Body = body
		if err := s.templateRepo.Update(existing); err != nil {
			return nil, wrapPersistence("template update", err)
		}
		return existing, nil
	}

	template := &models.MessageTemplate{
		UserID:       principal.UserID,
		TemplateType: templateType,
		Body:         body,
	}
	if err := s.templateRepo.Create(template); err != nil {
		return nil, wrapPersistence("template create", err)
	}
	return template, nil
}

// List returns the principal's templates
func (s *TemplateService) List(principal Principal) ([]models.MessageTemplate, error) {
	templates, err := s.templateRepo.ListByUser(principal.UserID)
	if err != nil {
		return nil, wrapPersistence("template list", err)
	}
	return templates, nil
}

// Get returns the principal's template for an audience type
func (s *TemplateService) Get(principal Principal, templateType string) (*models.MessageTemplate, error) {
	if !templateTypeAllowed(principal, templateType) {
		return nil, ErrTemplateTypeNotAllowed
	}
	template, err := s.templateRepo.GetByUserAndType(principal.UserID, templateType)
	if err != nil {
		return nil, wrapPersistence("template lookup", err)
	}
	if template == nil {
		return nil, ErrNotFound
	}
	return template, nil
}

// Delete removes the principal's template for an audience type
func (s *TemplateService) Delete(principal Principal, templateType string) error {
	if !templateTypeAllowed(principal, templateType) {
		return ErrTemplateTypeNotAllowed
	}
	if err := s.templateRepo.Delete(principal.UserID, templateType); err != nil {
		return wrapPersistence("template delete", err)
	}
	return nil
}

// ResolvePlaceholders substitutes {name} markers with caller-provided
// values. Unknown markers are left intact; the template engine itself never
// decides what a variable means.
func ResolvePlaceholders(body string, vars map[string]string) string {
	if len(vars) == 0 {
		return body
	}
	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(body)
}
