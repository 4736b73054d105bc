package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/rakaarfi/roster-system-be/internal/models"
)

// DecodeStaffDocument reads a stored staff document into the canonical profile.
//
// Older documents were written by several clients, so field names are accepted
// in camelCase, PascalCase or snake_case, status and role labels are case-folded,
// numbers may arrive as strings and timestamps as RFC 3339 strings, epoch
// milliseconds or {seconds, nanoseconds} objects. Anything else is rejected with
// ErrMalformed, and a shift without an id is rejected with ErrLegacyShift.
func DecodeStaffDocument(id string, raw []byte) (*models.StaffProfile, error) {
	var doc map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: staff %s: %v", ErrMalformed, id, err)
	}

	r := fieldReader{doc: doc}
	p := &models.StaffProfile{
		ID:            id,
		Name:          r.str("name"),
		Email:         r.str("email"),
		WeeklyHourCap: r.number("weeklyHourCap"),
		FCMToken:      r.str("fcmToken"),
		Active:        r.boolean("active", true),
		Shifts:        []models.Shift{},
		Messages:      []models.Message{},
	}
	p.CreatedAt, _ = r.timestamp("createdAt")
	if t, ok := r.timestamp("lastShiftCreatedAt"); ok {
		p.LastShiftCreatedAt = &t
	}
	role := r.str("role")
	if r.err != nil {
		return nil, fmt.Errorf("staff %s: %w", id, r.err)
	}

	var err error
	if p.Role, err = canonicalRole(role); err != nil {
		return nil, fmt.Errorf("staff %s: %w", id, err)
	}

	for i, item := range r.list("shifts") {
		s, err := decodeShift(item)
		if err != nil {
			return nil, fmt.Errorf("staff %s shift #%d: %w", id, i, err)
		}
		p.Shifts = append(p.Shifts, s)
	}
	for i, item := range r.list("messages") {
		m, err := decodeMessage(item)
		if err != nil {
			return nil, fmt.Errorf("staff %s message #%d: %w", id, i, err)
		}
		p.Messages = append(p.Messages, m)
	}
	if r.err != nil {
		return nil, fmt.Errorf("staff %s: %w", id, r.err)
	}
	return p, nil
}

// EncodeStaffDocument writes the canonical form. The revision lives next to
// the document, not inside it.
func EncodeStaffDocument(p *models.StaffProfile) ([]byte, error) {
	doc := *p
	doc.Revision = 0
	if doc.Shifts == nil {
		doc.Shifts = []models.Shift{}
	}
	if doc.Messages == nil {
		doc.Messages = []models.Message{}
	}
	return json.Marshal(doc)
}

func decodeShift(item any) (models.Shift, error) {
	m, ok := item.(map[string]any)
	if !ok {
		return models.Shift{}, fmt.Errorf("%w: shift is %T, want object", ErrMalformed, item)
	}
	r := fieldReader{doc: m}
	s := models.Shift{
		ID:              r.str("id"),
		ShiftDate:       r.str("shiftDate"),
		ShiftStartTime:  r.str("shiftStartTime"),
		ShiftEndTime:    r.str("shiftEndTime"),
		DurationMinutes: int(r.number("durationMinutes")),
		ShiftRole:       strings.ToLower(r.str("shiftRole")),
	}
	s.CreatedAt, _ = r.timestamp("createdAt")
	status := r.str("status")

	if req := r.object("request"); req != nil {
		rr := fieldReader{doc: req}
		s.Request = &models.ShiftRequest{
			ShiftStartTime: rr.str("shiftStartTime"),
			ShiftEndTime:   rr.str("shiftEndTime"),
			PrevStartTime:  rr.str("prevStartTime"),
			PrevEndTime:    rr.str("prevEndTime"),
		}
		s.Request.RequestedAt, _ = rr.timestamp("requestedAt")
		if rr.err != nil {
			return models.Shift{}, fmt.Errorf("request: %w", rr.err)
		}
	}
	if r.err != nil {
		return models.Shift{}, r.err
	}

	var err error
	if s.Status, err = canonicalStatus(status); err != nil {
		return models.Shift{}, err
	}
	if s.ID == "" {
		return models.Shift{}, fmt.Errorf("%w: %s %s (%s)", ErrLegacyShift, s.ShiftDate, s.ShiftStartTime, s.ShiftRole)
	}
	return s, nil
}

func decodeMessage(item any) (models.Message, error) {
	m, ok := item.(map[string]any)
	if !ok {
		return models.Message{}, fmt.Errorf("%w: message is %T, want object", ErrMalformed, item)
	}
	r := fieldReader{doc: m}
	msg := models.Message{Text: r.str("text"), From: r.str("from")}
	msg.SentAt, _ = r.timestamp("sentAt")
	return msg, r.err
}

func canonicalStatus(s string) (models.ShiftStatus, error) {
	switch strings.ToLower(s) {
	case "", string(models.StatusAssigned):
		return models.StatusAssigned, nil
	case string(models.StatusPending):
		return models.StatusPending, nil
	case string(models.StatusApproved):
		return models.StatusApproved, nil
	case string(models.StatusCancelled), "canceled":
		return models.StatusCancelled, nil
	}
	return "", fmt.Errorf("%w: unknown shift status %q", ErrMalformed, s)
}

func canonicalRole(s string) (string, error) {
	if s == "" {
		return models.RoleStaff, nil
	}
	for _, role := range []string{models.RoleStaff, models.RoleHR, models.RoleAdmin} {
		if strings.EqualFold(s, role) {
			return role, nil
		}
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrMalformed, s)
}

// keyVariants returns the camelCase key with its PascalCase and snake_case forms.
func keyVariants(camel string) []string {
	var snake strings.Builder
	for i, r := range camel {
		if unicode.IsUpper(r) {
			if i > 0 {
				snake.WriteByte('_')
			}
			snake.WriteRune(unicode.ToLower(r))
			continue
		}
		snake.WriteRune(r)
	}
	return []string{camel, strings.ToUpper(camel[:1]) + camel[1:], snake.String()}
}

// fieldReader keeps the first conversion error so callers can read a batch of
// fields and check once.
type fieldReader struct {
	doc map[string]any
	err error
}

func (r *fieldReader) fail(format string, args ...any) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: "+format, append([]any{ErrMalformed}, args...)...)
	}
}

func (r *fieldReader) lookup(key string) (any, bool) {
	for _, k := range keyVariants(key) {
		if v, ok := r.doc[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (r *fieldReader) str(key string) string {
	v, ok := r.lookup(key)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	}
	r.fail("%s is %T, want string", key, v)
	return ""
}

func (r *fieldReader) number(key string) float64 {
	v, ok := r.lookup(key)
	if !ok {
		return 0
	}
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			r.fail("%s=%s: %v", key, t, err)
		}
		return f
	case string:
		t = strings.TrimSpace(t)
		if t == "" {
			return 0
		}
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			r.fail("%s=%q is not a number", key, t)
		}
		return f
	}
	r.fail("%s is %T, want number", key, v)
	return 0
}

func (r *fieldReader) boolean(key string, def bool) bool {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			r.fail("%s=%q is not a boolean", key, t)
		}
		return b
	}
	r.fail("%s is %T, want boolean", key, v)
	return def
}

func (r *fieldReader) timestamp(key string) (time.Time, bool) {
	v, ok := r.lookup(key)
	if !ok {
		return time.Time{}, false
	}
	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) == "" {
			return time.Time{}, false
		}
		ts, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(t))
		if err != nil {
			r.fail("%s=%q is not an RFC 3339 timestamp", key, t)
			return time.Time{}, false
		}
		return ts, true
	case json.Number:
		ms, err := t.Int64()
		if err != nil {
			r.fail("%s=%s is not epoch milliseconds", key, t)
			return time.Time{}, false
		}
		return time.UnixMilli(ms).UTC(), true
	case map[string]any:
		inner := fieldReader{doc: t}
		sec := inner.number("seconds")
		if _, ok := inner.lookup("seconds"); !ok {
			sec = inner.number("_seconds")
		}
		nsec := inner.number("nanoseconds")
		if _, ok := inner.lookup("nanoseconds"); !ok {
			nsec = inner.number("_nanoseconds")
		}
		if inner.err != nil {
			r.fail("%s: %v", key, inner.err)
			return time.Time{}, false
		}
		return time.Unix(int64(sec), int64(nsec)).UTC(), true
	}
	r.fail("%s is %T, want timestamp", key, v)
	return time.Time{}, false
}

func (r *fieldReader) list(key string) []any {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		r.fail("%s is %T, want array", key, v)
		return nil
	}
	return items
}

func (r *fieldReader) object(key string) map[string]any {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		r.fail("%s is %T, want object", key, v)
		return nil
	}
	return m
}
