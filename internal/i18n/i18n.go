package i18n

import "strings"

const DefaultLocale = "en"

// Response message keys used by the handlers.
const (
	KeyAdminCreated    = "admin.created"
	KeyAdminUpdated    = "admin.updated"
	KeyAdminDeleted    = "admin.deleted"
	KeyLoginSuccess    = "auth.login_success"
	KeyCustomerCreated = "customer.created"
	KeyCustomerUpdated = "customer.updated"
	KeyProductCreated  = "product.created"
	KeyProductUpdated  = "product.updated"
	KeyProductDeleted  = "product.deleted"
	KeyOrderCreated    = "order.created"
	KeyOrderCancelled  = "order.cancelled"
	KeyOrderUpdated    = "order.updated"
	KeyListed          = "common.listed"
	KeyFetched         = "common.fetched"
)

var messages = map[string]map[string]string{
	"en": {
		KeyAdminCreated:    "Admin created successfully",
		KeyAdminUpdated:    "Admin updated successfully",
		KeyAdminDeleted:    "Admin deleted successfully",
		KeyLoginSuccess:    "Logged in successfully",
		KeyCustomerCreated: "Account created successfully",
		KeyCustomerUpdated: "Profile updated successfully",
		KeyProductCreated:  "Product created successfully",
		KeyProductUpdated:  "Product updated successfully",
		KeyProductDeleted:  "Product deleted successfully",
		KeyOrderCreated:    "Order placed successfully",
		KeyOrderCancelled:  "Order cancelled successfully",
		KeyOrderUpdated:    "Order updated successfully",
		KeyListed:          "Fetched successfully",
		KeyFetched:         "Fetched successfully",
	},
	"ar": {
		KeyAdminCreated:    "تم إنشاء المشرف بنجاح",
		KeyAdminUpdated:    "تم تحديث المشرف بنجاح",
		KeyAdminDeleted:    "تم حذف المشرف بنجاح",
		KeyLoginSuccess:    "تم تسجيل الدخول بنجاح",
		KeyCustomerCreated: "تم إنشاء الحساب بنجاح",
		KeyCustomerUpdated: "تم تحديث الملف الشخصي بنجاح",
		KeyProductCreated:  "تم إنشاء المنتج بنجاح",
		KeyProductUpdated:  "تم تحديث المنتج بنجاح",
		KeyProductDeleted:  "تم حذف المنتج بنجاح",
		KeyOrderCreated:    "تم تقديم الطلب بنجاح",
		KeyOrderCancelled:  "تم إلغاء الطلب بنجاح",
		KeyOrderUpdated:    "تم تحديث الطلب بنجاح",
		KeyListed:          "تم الجلب بنجاح",
		KeyFetched:         "تم الجلب بنجاح",
	},
}

// Lookup resolves a message key for a locale, falling back to English for
// unknown locales or untranslated keys. Unknown keys come back verbatim so
// a missing translation never blanks a response.
func Lookup(locale, key string) string {
	if table, ok := messages[locale]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// ParseLocale extracts the primary language from an Accept-Language header
// value ("ar-SA,ar;q=0.9" yields "ar").
func ParseLocale(header string) string {
	if header == "" {
		return DefaultLocale
	}
	primary := header
	if i := strings.IndexAny(primary, ",;"); i >= 0 {
		primary = primary[:i]
	}
	if i := strings.Index(primary, "-"); i >= 0 {
		primary = primary[:i]
	}
	primary = strings.ToLower(strings.TrimSpace(primary))
	if _, ok := messages[primary]; !ok {
		return DefaultLocale
	}
	return primary
}
