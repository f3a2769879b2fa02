package model

// ProtectionLevel classifies a permission by the protection the platform
// applies when granting it.
type ProtectionLevel string

// Protection levels recognized by the analyzer. ProtectionUnknown marks
// permissions that are absent from the built-in taxonomy; they are reported
// as unclassified rather than dropped.
const (
	ProtectionNormal    ProtectionLevel = "normal"
	ProtectionDangerous ProtectionLevel = "dangerous"
	ProtectionSignature ProtectionLevel = "signature"
	ProtectionUnknown   ProtectionLevel = "unknown"
)

// PermissionUsage is one permission the manifest declares or uses, paired
// with its protection level from the taxonomy.
type PermissionUsage struct {
	// Name is the fully qualified permission name,
	// e.g. "android.permission.CAMERA".
	Name string `json:"name"`

	// Protection is the classified protection level.
	Protection ProtectionLevel `json:"protection"`
}
