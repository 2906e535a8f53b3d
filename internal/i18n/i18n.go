// Package i18n holds the user-facing messages in Arabic and English.
package i18n

import (
	"golang.org/x/text/language"
)

const (
	Arabic  = "ar"
	English = "en"
)

var matcher = language.NewMatcher([]language.Tag{language.Arabic, language.English})

var messages = map[string]map[string]string{
	Arabic: {
		"customer_name_required":       "يجب إدخال اسم العميل",
		"project_description_required": "يجب إدخال وصف المشروع",
		"items_required":               "يجب إضافة بند واحد على الأقل",
		"item_description_required":    "يجب إدخال وصف لجميع البنود",
		"negative_amount":              "لا يمكن أن تكون الكمية أو السعر بالسالب",
		"amount_too_large":             "الكمية أو السعر أكبر من الحد المسموح",
		"invalid_input":                "البيانات المدخلة غير صحيحة",
		"invalid_credentials":          "اسم المستخدم أو كلمة المرور غير صحيحة",
		"unauthorized":                 "يجب تسجيل الدخول أولاً",
		"forbidden":                    "ليس لديك صلاحية للوصول إلى هذا المورد",
		"quote_not_found":              "عرض السعر غير موجود",
		"quote_load_failed":            "حدث خطأ أثناء تحميل عرض السعر",
		"quote_save_failed":            "حدث خطأ أثناء حفظ عرض السعر",
		"quote_created":                "تم إنشاء عرض السعر بنجاح",
		"quote_updated":                "تم تحديث عرض السعر بنجاح",
		"quote_deleted":                "تم حذف عرض السعر",
		"export_failed":                "حدث خطأ أثناء إنشاء الملف",
		"unsupported_format":           "صيغة التصدير غير مدعومة",
		"company_load_failed":          "حدث خطأ أثناء تحميل بيانات الشركة",
		"company_save_failed":          "حدث خطأ أثناء حفظ بيانات الشركة",
		"logo_must_be_image":           "يجب أن يكون الملف صورة",
		"file_not_found":               "الملف غير موجود",
		"operation_failed":             "تعذر تنفيذ العملية",
		"logged_out":                   "تم تسجيل الخروج",
	},
	English: {
		"customer_name_required":       "Customer name is required",
		"project_description_required": "Project description is required",
		"items_required":               "At least one item is required",
		"item_description_required":    "Every item needs a description",
		"negative_amount":              "Quantity and price cannot be negative",
		"amount_too_large":             "Quantity or price is too large",
		"invalid_input":                "Invalid input",
		"invalid_credentials":          "Invalid username or password",
		"unauthorized":                 "Please sign in first",
		"forbidden":                    "You do not have permission to access this resource",
		"quote_not_found":              "Quote not found",
		"quote_load_failed":            "Failed to load the quote",
		"quote_save_failed":            "Failed to save the quote",
		"quote_created":                "Quote created",
		"quote_updated":                "Quote updated",
		"quote_deleted":                "Quote deleted",
		"export_failed":                "Failed to generate the file",
		"unsupported_format":           "Unsupported export format",
		"company_load_failed":          "Failed to load the company profile",
		"company_save_failed":          "Failed to save the company profile",
		"logo_must_be_image":           "File must be an image",
		"file_not_found":               "File not found",
		"operation_failed":             "Operation failed",
		"logged_out":                   "Signed out",
	},
}

// Detect picks the message language from an Accept-Language header.
// Arabic is the default.
func Detect(acceptLanguage string) string {
	if acceptLanguage == "" {
		return Arabic
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Arabic
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Arabic
	}
	if idx == 1 {
		return English
	}
	return Arabic
}

// Normalize maps a configured language name to a supported one.
func Normalize(lang string) string {
	if lang == English {
		return English
	}
	return Arabic
}

// T returns the message for key, falling back to Arabic and then to the key.
func T(lang, key string) string {
	if msg, ok := messages[lang][key]; ok {
		return msg
	}
	if msg, ok := messages[Arabic][key]; ok {
		return msg
	}
	return key
}
