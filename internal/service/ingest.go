package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shenikar/disaster_incident_system/internal/models"
)

// IngestValidator проверяет и нормализует обе формы создания инцидента
// в каноническую запись, готовую к сохранению.
type IngestValidator struct {
	validate *validator.Validate
}

func NewIngestValidator() *IngestValidator {
	v := validator.New()
	// В ошибках используем имена полей из json, а не из Go
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("gps", func(fl validator.FieldLevel) bool {
		_, _, err := ParseGPS(fl.Field().String())
		return err == nil
	})
	return &IngestValidator{validate: v}
}

// NormalizeFullReport проверяет полную форму. Для авторизованного отправителя
// поля репортера берутся из его профиля, для анонимного - из формы.
func (v *IngestValidator) NormalizeFullReport(r models.FullReport, caller *models.Caller) (*models.Incident, error) {
	r.Title = strings.TrimSpace(r.Title)
	r.IncidentType = strings.TrimSpace(r.IncidentType)
	r.SeverityLevel = strings.TrimSpace(r.SeverityLevel)
	if r.SeverityLevel == "" {
		r.SeverityLevel = string(models.LevelMedium)
	}
	r.Description = strings.TrimSpace(r.Description)
	r.Location = strings.TrimSpace(r.Location)
	r.GPSCoordinates = strings.TrimSpace(r.GPSCoordinates)
	r.ReporterName = strings.TrimSpace(r.ReporterName)
	r.ReporterPhone = strings.TrimSpace(r.ReporterPhone)
	r.ReporterEmail = strings.TrimSpace(r.ReporterEmail)
	r.AssistanceNeeded = trimAll(r.AssistanceNeeded)
	r.Photos = clampPhotos(trimAll(r.Photos))
	r.Anonymous = caller.IsAnonymous()

	if err := v.check(r); err != nil {
		return nil, err
	}

	inc := &models.Incident{
		Title:            r.Title,
		Description:      r.Description,
		Location:         r.Location,
		IncidentType:     models.IncidentType(r.IncidentType),
		SeverityLevel:    models.Level(r.SeverityLevel),
		AffectedPeople:   r.AffectedPeople,
		Casualties:       r.Casualties,
		AssistanceNeeded: dedupeAssistance(r.AssistanceNeeded),
		AreaAccessible:   boolOrDefault(r.AreaAccessible, true),
		Photos:           r.Photos,
		PriorityLevel:    models.LevelMedium,
		TeamsDispatched:  []string{},
	}
	inc.GPSCoordinates = normalizedGPS(r.GPSCoordinates)

	if r.Anonymous {
		inc.ReporterName = r.ReporterName
		inc.ReporterPhone = r.ReporterPhone
		inc.ReporterEmail = r.ReporterEmail
	} else {
		id := caller.ID
		inc.ReportedBy = &id
		inc.ReporterName = caller.Name
		inc.ReporterPhone = caller.Phone
		inc.ReporterEmail = caller.Email
	}
	return inc, nil
}

// NormalizeEmergencyReport проверяет экстренную форму. Отправитель всегда анонимен.
func (v *IngestValidator) NormalizeEmergencyReport(r models.EmergencyReport) (*models.Incident, error) {
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	r.IncidentType = strings.TrimSpace(r.IncidentType)
	r.SeverityLevel = strings.TrimSpace(r.SeverityLevel)
	if r.SeverityLevel == "" {
		r.SeverityLevel = string(models.LevelCritical)
	}
	r.Location = strings.TrimSpace(r.Location)
	r.GPSCoordinates = strings.TrimSpace(r.GPSCoordinates)
	r.Description = strings.TrimSpace(r.Description)
	r.AssistanceNeeded = trimAll(r.AssistanceNeeded)
	r.CasualtiesReported = strings.ToUpper(strings.TrimSpace(r.CasualtiesReported))

	if err := v.check(r); err != nil {
		return nil, err
	}

	casualties := 0
	if r.CasualtiesReported == "YES" {
		// Точное число неизвестно, фиксируем факт наличия пострадавших
		casualties = 1
	}

	inc := &models.Incident{
		Title:            "EMERGENCY: " + r.IncidentType,
		Description:      r.Description,
		Location:         r.Location,
		IncidentType:     models.IncidentType(r.IncidentType),
		SeverityLevel:    models.Level(r.SeverityLevel),
		ReporterPhone:    r.PhoneNumber,
		AffectedPeople:   r.PeopleAffected,
		Casualties:       casualties,
		AssistanceNeeded: dedupeAssistance(r.AssistanceNeeded),
		AreaAccessible:   boolOrDefault(r.AreaAccessible, true),
		Photos:           []string{},
		PriorityLevel:    models.LevelMedium,
		TeamsDispatched:  []string{},
	}
	inc.GPSCoordinates = normalizedGPS(r.GPSCoordinates)
	return inc, nil
}

// check возвращает первое нарушенное ограничение как *models.ValidationError
func (v *IngestValidator) check(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate report: %w", err)
	}
	return toValidationError(verrs[0])
}

func toValidationError(fe validator.FieldError) *models.ValidationError {
	field := fe.Field()
	// assistance_needed[2] -> assistance_needed
	if i := strings.IndexByte(field, '['); i >= 0 {
		field = field[:i]
	}

	var reason string
	switch fe.Tag() {
	case "required", "required_if":
		reason = "is required"
	case "oneof":
		reason = "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "max":
		reason = fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		reason = "must not be negative"
	case "email":
		reason = "must be a valid email address"
	case "gps":
		reason = `must be a "lat,lng" pair of decimal numbers`
	default:
		reason = "is invalid"
	}
	return &models.ValidationError{Field: field, Reason: reason}
}

// decimalPattern - знаковое десятичное число без экспоненты и hex-записи
var decimalPattern = regexp.MustCompile(`^[+-]?\d+(\.\d+)?$`)

// ParseGPS разбирает строку "lat,lng" в два конечных десятичных числа
func ParseGPS(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected two comma separated numbers, got %q", s)
	}
	latRaw, lngRaw := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if !decimalPattern.MatchString(latRaw) || !decimalPattern.MatchString(lngRaw) {
		return 0, 0, fmt.Errorf("coordinates must be plain decimal numbers, got %q", s)
	}
	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse longitude: %w", err)
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return 0, 0, fmt.Errorf("coordinates out of range")
	}
	return lat, lng, nil
}

func normalizedGPS(s string) *string {
	if s == "" {
		return nil
	}
	lat, lng, err := ParseGPS(s)
	if err != nil {
		return nil
	}
	out := strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
	return &out
}

// dedupeAssistance схлопывает повторы; порядок для множества не важен,
// поэтому сортируем для детерминированного хранения
func dedupeAssistance(in []string) []models.Assistance {
	seen := make(map[string]struct{}, len(in))
	out := make([]models.Assistance, 0, len(in))
	for _, a := range in {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, models.Assistance(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// dedupeStrings - то же для произвольного множества строк (команды)
func dedupeStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func clampPhotos(photos []string) []string {
	if len(photos) > models.MaxPhotos {
		photos = photos[:models.MaxPhotos]
	}
	if photos == nil {
		return []string{}
	}
	return photos
}

func trimAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

func boolOrDefault(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
