package db_models

import "time"

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

// Permissions is a closed set of per-area flags. Adding a protected area is
// a schema change on purpose; this is not an open key-value map.
type Permissions struct {
	Dashboard    bool `gorm:"column:perm_dashboard" json:"dashboard"`
	Projects     bool `gorm:"column:perm_projects" json:"projects"`
	Services     bool `gorm:"column:perm_services" json:"services"`
	Capabilities bool `gorm:"column:perm_capabilities" json:"capabilities"`
	ClientFit    bool `gorm:"column:perm_client_fit" json:"clientFit"`
	Process      bool `gorm:"column:perm_process" json:"process"`
	About        bool `gorm:"column:perm_about" json:"about"`
	TechStack    bool `gorm:"column:perm_tech_stack" json:"techStack"`
	TrustSignals bool `gorm:"column:perm_trust_signals" json:"trustSignals"`
	Media        bool `gorm:"column:perm_media" json:"media"`
	Inbox        bool `gorm:"column:perm_inbox" json:"inbox"`
	SiteConfig   bool `gorm:"column:perm_site_config" json:"siteConfig"`
	FormOptions  bool `gorm:"column:perm_form_options" json:"formOptions"`
	Users        bool `gorm:"column:perm_users" json:"users"`
}

// Has resolves a permission by its wire name.
func (p Permissions) Has(name string) bool {
	switch name {
	case "dashboard":
		return p.Dashboard
	case "projects":
		return p.Projects
	case "services":
		return p.Services
	case "capabilities":
		return p.Capabilities
	case "clientFit":
		return p.ClientFit
	case "process":
		return p.Process
	case "about":
		return p.About
	case "techStack":
		return p.TechStack
	case "trustSignals":
		return p.TrustSignals
	case "media":
		return p.Media
	case "inbox":
		return p.Inbox
	case "siteConfig":
		return p.SiteConfig
	case "formOptions":
		return p.FormOptions
	case "users":
		return p.Users
	default:
		return false
	}
}

// DefaultPermissions is what a self-registered account starts with.
func DefaultPermissions() Permissions {
	return Permissions{Dashboard: true}
}

// SuperAdminPermissions has every flag set. A super_admin account must never
// carry anything less.
func SuperAdminPermissions() Permissions {
	return Permissions{
		Dashboard:    true,
		Projects:     true,
		Services:     true,
		Capabilities: true,
		ClientFit:    true,
		Process:      true,
		About:        true,
		TechStack:    true,
		TrustSignals: true,
		Media:        true,
		Inbox:        true,
		SiteConfig:   true,
		FormOptions:  true,
		Users:        true,
	}
}

type Account struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;size:255"`
	PasswordHash string `gorm:"size:255"`
	Name         string `gorm:"size:100"`
	Role         string `gorm:"size:20;default:admin"`
	Status       string `gorm:"size:20;index;default:pending"`

	Permissions Permissions `gorm:"embedded"`

	IsEmailVerified    bool
	EmailVerifyCode    *string `gorm:"size:10"`
	EmailVerifyExpires *time.Time

	PasswordResetToken   *string `gorm:"size:100;index"`
	PasswordResetExpires *time.Time

	LastLogin *time.Time
}

func (Account) TableName() string {
	return "admin_users"
}

// IsSuperAdmin reports whether the account bypasses permission checks.
func (a *Account) IsSuperAdmin() bool {
	return a.Role == RoleSuperAdmin
}
