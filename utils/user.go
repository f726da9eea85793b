package utils

import "strings"

// ExtractNameFromEmail extracts the part before '@' as a display-name
// fallback for accounts that never set one.
func ExtractNameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}

// AvatarURLFor returns the DiceBear fallback avatar for a name.
func AvatarURLFor(name string) string {
	return "https://api.dicebear.com/9.x/adventurer/svg?seed=" + name
}
