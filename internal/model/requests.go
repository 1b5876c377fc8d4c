package model

import "time"

// LoginRequest authenticates by phone or email plus password.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type OTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type OTPVerifyRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required,numeric"`
}

// OTPIssuedResponse echoes the code only in development mode.
type OTPIssuedResponse struct {
	Message           string    `json:"message"`
	ExpiresAt         time.Time `json:"expires_at"`
	RequestsRemaining int       `json:"requests_remaining"`
	Code              string    `json:"code,omitempty"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

// CreateUserRequest is used by admins (society members) and superadmins (admins).
type CreateUserRequest struct {
	Name     string  `json:"name" binding:"required,max=100"`
	Email    *string `json:"email" binding:"omitempty,email,max=254"`
	Phone    string  `json:"phone" binding:"required,max=20"`
	Password string  `json:"password" binding:"omitempty,min=6,max=72"`
	Role     string  `json:"role"`
	FlatID   *uint   `json:"flat_id"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Email    *string `json:"email" binding:"omitempty,email,max=254"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	Password *string `json:"password" binding:"omitempty,min=6,max=72"`
	FlatID   *uint   `json:"flat_id"`
	IsActive *bool   `json:"is_active"`
}

// CreateAdminRequest creates an admin and links it to its first society.
type CreateAdminRequest struct {
	CreateUserRequest
	SocietyID uint `json:"society_id" binding:"required"`
}

type LinkSocietyRequest struct {
	SocietyID uint `json:"society_id" binding:"required"`
}

// CameraRequest carries the password, which Camera never serializes.
type CameraRequest struct {
	Name       string `json:"name"`
	Location   string `json:"location"`
	Host       string `json:"host"`
	Port       int    `json:"port"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	StreamPath string `json:"stream_path"`
	IsActive   *bool  `json:"is_active"`
}

// CameraStream is what guards receive to open a feed.
type CameraStream struct {
	*Camera
	StreamURL string `json:"stream_url"`
}

type NoticeRequest struct {
	Title    string `json:"title" binding:"required,max=200"`
	Body     string `json:"body"`
	Audience string `json:"audience" binding:"omitempty,oneof=all owners tenants users"`
	UserIDs  []uint `json:"user_ids"`
}

// ResidentNotice is a notice as seen by one recipient.
type ResidentNotice struct {
	Notice
	Read   bool       `json:"read"`
	ReadAt *time.Time `json:"read_at,omitempty"`
}

type CheckInRequest struct {
	Name          string `json:"name" binding:"required,max=100"`
	Phone         string `json:"phone" binding:"max=20"`
	Purpose       string `json:"purpose" binding:"max=200"`
	VehicleNumber string `json:"vehicle_number" binding:"max=20"`
	FlatID        *uint  `json:"flat_id"`
}

type AgreementRequest struct {
	FlatID        uint      `json:"flat_id" binding:"required"`
	TenantID      uint      `json:"tenant_id" binding:"required"`
	StartDate     time.Time `json:"start_date" binding:"required"`
	EndDate       time.Time `json:"end_date" binding:"required"`
	RentAmount    float64   `json:"rent_amount" binding:"gte=0"`
	DepositAmount float64   `json:"deposit_amount" binding:"gte=0"`
	DocumentURL   string    `json:"document_url" binding:"max=500"`
}

type AssignComplaintRequest struct {
	AssignedTo *uint  `json:"assigned_to"`
	Status     string `json:"status" binding:"omitempty,oneof=open in_progress resolved closed"`
}

// UploadRequest is the JSON form of an upload: a base64 data URL.
type UploadRequest struct {
	Data     string `json:"data" binding:"required"`
	Filename string `json:"filename"`
}

type UploadResponse struct {
	URL string `json:"url"`
}
