package analyzer

import (
	"context"
	"fmt"

	"github.com/Adimir123/manscan/internal/manifest"
	"github.com/Adimir123/manscan/internal/model"
)

// builtinTaxonomy maps well-known Android permissions to their protection
// level. Membership is a fixed table, not inferred; permissions outside it
// are classified ProtectionUnknown and surfaced for human review rather than
// dropped.
//
// Design decision: We keep the taxonomy as a literal map rather than loading
// it from a data file because the set changes only with platform releases,
// and a compiled-in table cannot go missing at runtime. Deployments that use
// vendor or custom permissions extend it through the rule file.
var builtinTaxonomy = map[string]model.ProtectionLevel{
	// Dangerous: runtime permissions guarding sensitive user data or
	// device capabilities.
	"android.permission.ACCEPT_HANDOVER":           model.ProtectionDangerous,
	"android.permission.ACCESS_BACKGROUND_LOCATION": model.ProtectionDangerous,
	"android.permission.ACCESS_COARSE_LOCATION":    model.ProtectionDangerous,
	"android.permission.ACCESS_FINE_LOCATION":      model.ProtectionDangerous,
	"android.permission.ACCESS_MEDIA_LOCATION":     model.ProtectionDangerous,
	"android.permission.ACTIVITY_RECOGNITION":      model.ProtectionDangerous,
	"android.permission.ADD_VOICEMAIL":             model.ProtectionDangerous,
	"android.permission.ANSWER_PHONE_CALLS":        model.ProtectionDangerous,
	"android.permission.BLUETOOTH_ADVERTISE":       model.ProtectionDangerous,
	"android.permission.BLUETOOTH_CONNECT":         model.ProtectionDangerous,
	"android.permission.BLUETOOTH_SCAN":            model.ProtectionDangerous,
	"android.permission.BODY_SENSORS":              model.ProtectionDangerous,
	"android.permission.CALL_PHONE":                model.ProtectionDangerous,
	"android.permission.CAMERA":                    model.ProtectionDangerous,
	"android.permission.GET_ACCOUNTS":              model.ProtectionDangerous,
	"android.permission.NEARBY_WIFI_DEVICES":       model.ProtectionDangerous,
	"android.permission.POST_NOTIFICATIONS":        model.ProtectionDangerous,
	"android.permission.PROCESS_OUTGOING_CALLS":    model.ProtectionDangerous,
	"android.permission.READ_CALENDAR":             model.ProtectionDangerous,
	"android.permission.READ_CALL_LOG":             model.ProtectionDangerous,
	"android.permission.READ_CONTACTS":             model.ProtectionDangerous,
	"android.permission.READ_EXTERNAL_STORAGE":     model.ProtectionDangerous,
	"android.permission.READ_MEDIA_AUDIO":          model.ProtectionDangerous,
	"android.permission.READ_MEDIA_IMAGES":         model.ProtectionDangerous,
	"android.permission.READ_MEDIA_VIDEO":          model.ProtectionDangerous,
	"android.permission.READ_PHONE_NUMBERS":        model.ProtectionDangerous,
	"android.permission.READ_PHONE_STATE":          model.ProtectionDangerous,
	"android.permission.READ_SMS":                  model.ProtectionDangerous,
	"android.permission.RECEIVE_MMS":               model.ProtectionDangerous,
	"android.permission.RECEIVE_SMS":               model.ProtectionDangerous,
	"android.permission.RECEIVE_WAP_PUSH":          model.ProtectionDangerous,
	"android.permission.RECORD_AUDIO":              model.ProtectionDangerous,
	"android.permission.SEND_SMS":                  model.ProtectionDangerous,
	"android.permission.USE_SIP":                   model.ProtectionDangerous,
	"android.permission.UWB_RANGING":               model.ProtectionDangerous,
	"android.permission.WRITE_CALENDAR":            model.ProtectionDangerous,
	"android.permission.WRITE_CALL_LOG":            model.ProtectionDangerous,
	"android.permission.WRITE_CONTACTS":            model.ProtectionDangerous,
	"android.permission.WRITE_EXTERNAL_STORAGE":    model.ProtectionDangerous,

	// Normal: install-time permissions granted automatically.
	"android.permission.ACCESS_NETWORK_STATE":    model.ProtectionNormal,
	"android.permission.ACCESS_WIFI_STATE":       model.ProtectionNormal,
	"android.permission.BLUETOOTH":               model.ProtectionNormal,
	"android.permission.BLUETOOTH_ADMIN":         model.ProtectionNormal,
	"android.permission.CHANGE_NETWORK_STATE":    model.ProtectionNormal,
	"android.permission.CHANGE_WIFI_STATE":       model.ProtectionNormal,
	"android.permission.EXPAND_STATUS_BAR":       model.ProtectionNormal,
	"android.permission.FOREGROUND_SERVICE":      model.ProtectionNormal,
	"android.permission.INTERNET":                model.ProtectionNormal,
	"android.permission.NFC":                     model.ProtectionNormal,
	"android.permission.RECEIVE_BOOT_COMPLETED":  model.ProtectionNormal,
	"android.permission.SET_ALARM":               model.ProtectionNormal,
	"android.permission.SET_WALLPAPER":           model.ProtectionNormal,
	"android.permission.USE_BIOMETRIC":           model.ProtectionNormal,
	"android.permission.USE_FINGERPRINT":         model.ProtectionNormal,
	"android.permission.VIBRATE":                 model.ProtectionNormal,
	"android.permission.WAKE_LOCK":               model.ProtectionNormal,

	// Signature: grantable only to apps signed with the platform key or
	// through explicit user settings flows.
	"android.permission.BIND_ACCESSIBILITY_SERVICE":        model.ProtectionSignature,
	"android.permission.BIND_DEVICE_ADMIN":                 model.ProtectionSignature,
	"android.permission.BIND_INPUT_METHOD":                 model.ProtectionSignature,
	"android.permission.BIND_NOTIFICATION_LISTENER_SERVICE": model.ProtectionSignature,
	"android.permission.BIND_VPN_SERVICE":                  model.ProtectionSignature,
	"android.permission.BIND_WALLPAPER":                    model.ProtectionSignature,
	"android.permission.CLEAR_APP_CACHE":                   model.ProtectionSignature,
	"android.permission.DELETE_PACKAGES":                   model.ProtectionSignature,
	"android.permission.INSTALL_PACKAGES":                  model.ProtectionSignature,
	"android.permission.MANAGE_EXTERNAL_STORAGE":           model.ProtectionSignature,
	"android.permission.PACKAGE_USAGE_STATS":               model.ProtectionSignature,
	"android.permission.READ_LOGS":                         model.ProtectionSignature,
	"android.permission.REBOOT":                            model.ProtectionSignature,
	"android.permission.REQUEST_INSTALL_PACKAGES":          model.ProtectionSignature,
	"android.permission.STATUS_BAR":                        model.ProtectionSignature,
	"android.permission.SYSTEM_ALERT_WINDOW":               model.ProtectionSignature,
	"android.permission.WRITE_SETTINGS":                    model.ProtectionSignature,
}

// PermissionAnalyzer classifies declared permissions against the taxonomy
// and emits one finding per permission. Classification is total: every
// declared permission surfaces in exactly one finding, including unknown
// ones, so users can judge the completeness of the analysis.
type PermissionAnalyzer struct {
	doc   *manifest.Document
	table manifest.StringTable

	// extra holds rule-file additions layered over the built-in taxonomy.
	// Entries here win over the built-in table.
	extra map[string]model.ProtectionLevel
}

// PermissionOption configures a PermissionAnalyzer.
type PermissionOption func(*PermissionAnalyzer)

// WithExtraPermissions layers additional permission classifications over the
// built-in taxonomy. Rule-file entries win on conflict so deployments can
// reclassify vendor permissions.
func WithExtraPermissions(extra map[string]model.ProtectionLevel) PermissionOption {
	return func(a *PermissionAnalyzer) {
		a.extra = extra
	}
}

// NewPermissionAnalyzer creates a PermissionAnalyzer over the given document
// and string table.
func NewPermissionAnalyzer(doc *manifest.Document, table manifest.StringTable, opts ...PermissionOption) *PermissionAnalyzer {
	a := &PermissionAnalyzer{doc: doc, table: table}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the step name.
func (a *PermissionAnalyzer) Name() string {
	return "permissions"
}

// Do classifies every declared permission in declaration order.
func (a *PermissionAnalyzer) Do(_ context.Context, report *model.Report) error {
	for _, up := range a.doc.UsesPermissions {
		name := a.table.Resolve(up.Name)
		if name == "" {
			continue
		}

		usage := model.PermissionUsage{
			Name:       name,
			Protection: a.classify(name),
		}
		report.Permissions = append(report.Permissions, usage)
		a.emitFinding(report, usage)
	}

	return nil
}

// classify looks up the protection level for a permission name.
func (a *PermissionAnalyzer) classify(name string) model.ProtectionLevel {
	if level, ok := a.extra[name]; ok {
		return level
	}
	if level, ok := builtinTaxonomy[name]; ok {
		return level
	}
	return model.ProtectionUnknown
}

// emitFinding maps one classified permission to its finding.
func (a *PermissionAnalyzer) emitFinding(report *model.Report, usage model.PermissionUsage) {
	var findingType, title string
	switch usage.Protection {
	case model.ProtectionDangerous:
		findingType = "dangerous_permission"
		title = "Dangerous Permission"
	case model.ProtectionSignature:
		findingType = "signature_permission"
		title = "Signature Permission"
	case model.ProtectionNormal:
		findingType = "normal_permission"
		title = "Normal Permission"
	default:
		findingType = "unclassified_permission"
		title = "Unclassified Permission"
	}

	report.AddFinding(model.NewFinding(findingType, title,
		fmt.Sprintf("app declares %s (%s)", usage.Name, usage.Protection),
		"", usage.Name))
}
