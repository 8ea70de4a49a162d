package domain

import "context"

// Settings is the singleton configuration document driving all display text
// and branding. The field set is closed; the CMS cannot introduce keys.
// Message fields edited through the rich-text editor are opaque strings here.
// swagger:model Settings
type Settings struct {
	// Texts
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	DateTime string `json:"date_time"`
	Location string `json:"location"`

	// Visuals
	BannerImageURL string `json:"banner_image_url"`
	BannerHeight   string `json:"banner_height"`
	PrimaryColor   string `json:"primary_color"`

	// Button styles
	AttendButtonColor string `json:"attend_button_color"`
	ProxyButtonColor  string `json:"proxy_button_color"`

	// Success messages
	AttendSuccessMsg string `json:"attend_success_msg"`
	ProxySuccessMsg  string `json:"proxy_success_msg"`

	// Duplicate-confirmation prompts
	MsgDuplicateAttendConfirm          string `json:"msg_duplicate_attend_confirm"`
	MsgDuplicateProxyConfirmFromAttend string `json:"msg_duplicate_proxy_confirm_from_attend"`
	MsgDuplicateProxyConfirmFromProxy  string `json:"msg_duplicate_proxy_confirm_from_proxy"`

	// Validation-error messages
	MsgNameValidationError  string `json:"msg_name_validation_error"`
	MsgPhoneValidationError string `json:"msg_phone_validation_error"`
	MsgPrivacyError         string `json:"msg_privacy_error"`
	MsgSignatureError       string `json:"msg_signature_error"`
	MsgProxyNameError       string `json:"msg_proxy_name_error"`

	// Notice box
	NoticeBoxBg string `json:"notice_box_bg"`
	NoticeText  string `json:"notice_text"`

	// Contact footer
	ContactOrgName string `json:"contact_org_name"`
	ContactPhone   string `json:"contact_phone"`
	ContactFax     string `json:"contact_fax"`
	ContactEmail   string `json:"contact_email"`
	ContactHours   string `json:"contact_hours"`
}

// DefaultSettings returns the settings used until an administrator saves the
// singleton for the first time.
func DefaultSettings() *Settings {
	return &Settings{
		Title:    "2026년 제25차 (사)한국평생교육사",
		Subtitle: "협회 정기총회",
		DateTime: "2026. 2. 21.(토) 10:30",
		Location: "온라인(Zoom) 운영",

		BannerImageURL: "",
		BannerHeight:   "200",
		PrimaryColor:   "from-slate-800 to-slate-900",

		AttendButtonColor: "bg-emerald-600 hover:bg-emerald-700",
		ProxyButtonColor:  "bg-blue-600 hover:bg-blue-700",

		AttendSuccessMsg: "참석 정보가 정상적으로 되었습니다. 감사합니다.",
		ProxySuccessMsg:  "위임장 제출이 정상적으로 되었습니다. 감사합니다.",

		MsgDuplicateAttendConfirm:          "이미 의사가 등록되어 있습니다. 참석으로 변경(또는 갱신)하시겠습니까?",
		MsgDuplicateProxyConfirmFromAttend: "이미 참석 제출하였습니다. 위임장으로 제출하시겠습니까?",
		MsgDuplicateProxyConfirmFromProxy:  "이미 의사가 등록되어 있습니다. 위임장 제출로 변경하시겠습니까?",

		MsgNameValidationError:  "이름은 한글 또는 영문(대소문자)만 입력 가능하며 공백이 없어야 합니다.",
		MsgPhoneValidationError: "전화번호는 숫자만 입력해주세요.",
		MsgPrivacyError:         "개인정보 수집 및 이용에 동의해주셔야 제출이 가능합니다.",
		MsgSignatureError:       "서명이 필요합니다.",
		MsgProxyNameError:       "위임받을 회원의 이름을 입력해주세요.",

		NoticeBoxBg: "bg-amber-50",
		NoticeText:  "※ 참석이 어려우신 분은 위임장을 제출해주시기 바랍니다.\n※ 위임장 제출 시 전자서명이 필요합니다.",

		ContactOrgName: "사단법인 한국평생교육사협회",
		ContactPhone:   "02-499-0043",
		ContactFax:     "02-499-0044",
		ContactEmail:   "kale_2002@hanmail.net",
		ContactHours:   "10:00~15:00 (12~13시 제외)",
	}
}

// SettingsRepository stores the settings singleton at the logical path
// settings/config. Get returns ErrNotFound until the first save.
type SettingsRepository interface {
	Save(ctx context.Context, settings *Settings) error
	Get(ctx context.Context) (*Settings, error)
}

// SettingsService serves the singleton with defaults applied and accepts CMS
// saves. Settings are never deleted.
type SettingsService interface {
	Get(ctx context.Context) (*Settings, error)
	Update(ctx context.Context, settings *Settings) error
}
