package models

import (
	"time"
)

const (
	RoleStaff = "Staff"
	RoleHR    = "HR"
	RoleAdmin = "Admin"
)

type ShiftStatus string

const (
	StatusAssigned  ShiftStatus = "assigned"
	StatusPending   ShiftStatus = "pending"
	StatusApproved  ShiftStatus = "approved"
	StatusCancelled ShiftStatus = "cancelled"
)

// Shift is one scheduled work period, stored inside the owning staff document.
// Dates and times are local wall-clock values without a zone.
type Shift struct {
	ID              string        `json:"id"`
	ShiftDate       string        `json:"shiftDate"`                 // Format YYYY-MM-DD
	ShiftStartTime  string        `json:"shiftStartTime"`            // Format HH:MM
	ShiftEndTime    string        `json:"shiftEndTime,omitempty"`    // Format HH:MM, optional
	DurationMinutes int           `json:"durationMinutes,omitempty"` // Used when there is no end time
	ShiftRole       string        `json:"shiftRole"`
	Status          ShiftStatus   `json:"status"`
	Request         *ShiftRequest `json:"request,omitempty"`
	CreatedAt       time.Time     `json:"createdAt,omitzero"`
}

// ShiftRequest is a staff-proposed time change awaiting approval.
type ShiftRequest struct {
	ShiftStartTime string    `json:"shiftStartTime,omitempty"`
	ShiftEndTime   string    `json:"shiftEndTime,omitempty"`
	PrevStartTime  string    `json:"prevStartTime"`
	PrevEndTime    string    `json:"prevEndTime"`
	RequestedAt    time.Time `json:"requestedAt"`
}

type Message struct {
	Text   string    `json:"text"`
	From   string    `json:"from"`
	SentAt time.Time `json:"sentAt"`
}

// StaffProfile is the staff document. Revision is bumped by the store on every write.
type StaffProfile struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	Role               string     `json:"role"`
	WeeklyHourCap      float64    `json:"weeklyHourCap"`
	Shifts             []Shift    `json:"shifts"`
	Messages           []Message  `json:"messages"`
	FCMToken           string     `json:"fcmToken,omitempty"`
	Active             bool       `json:"active"`
	CreatedAt          time.Time  `json:"createdAt,omitzero"`
	LastShiftCreatedAt *time.Time `json:"lastShiftCreatedAt,omitempty"`
	Revision           int64      `json:"revision"`
}

// Principal is the already-authenticated caller handed to handlers by the auth middleware.
type Principal struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Email  string `json:"email"`
}

// Credentials is what the identity lookup needs to verify a login.
type Credentials struct {
	Principal
	PasswordHash string
	Active       bool
}

// Input struct terpisah untuk tiap aksi

type LoginInput struct {
	UserID   string `json:"user_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateStaffInput struct {
	UserID        string  `json:"user_id" validate:"required,loginid"`
	Name          string  `json:"name" validate:"required,max=100"`
	Email         string  `json:"email" validate:"required,email"`
	Role          string  `json:"role" validate:"required,oneof=Staff HR Admin"`
	WeeklyHourCap float64 `json:"weekly_hour_cap" validate:"omitempty,gt=0"`
	Password      string  `json:"password" validate:"required,min=6"`
}

type CreateShiftInput struct {
	ShiftDate      string `json:"shiftDate" validate:"required,isodate"`
	ShiftRole      string `json:"shiftRole" validate:"required,max=50"`
	ShiftStartTime string `json:"shiftStartTime" validate:"required,hhmm"`
	ShiftEndTime   string `json:"shiftEndTime,omitempty" validate:"omitempty,hhmm"`
}

type EditRequestInput struct {
	ShiftStartTime string `json:"shiftStartTime,omitempty" validate:"required_without=ShiftEndTime,omitempty,hhmm"`
	ShiftEndTime   string `json:"shiftEndTime,omitempty" validate:"required_without=ShiftStartTime,omitempty,hhmm"`
}

type UpdateCapInput struct {
	WeeklyHourCap float64 `json:"weekly_hour_cap" validate:"required,gt=0"`
}

type SendMessageInput struct {
	Text string `json:"text" validate:"required,max=1000"`
}

type DeviceTokenInput struct {
	Token string `json:"token" validate:"required,max=4096"`
}

// Response standar untuk API
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
