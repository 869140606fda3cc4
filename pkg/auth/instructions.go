package auth

import (
	"fmt"
	"io"
	"strings"
)

// ShowTokenGuide writes step-by-step instructions for obtaining both tokens
func ShowTokenGuide(w io.Writer) {
	rule := strings.Repeat("=", 72)
	lines := []string{
		rule,
		"📚 TOKEN GUIDE",
		rule,
		"",
		"vkbackup needs two tokens: one to read your VK photos and one to",
		"write into your Yandex Disk.",
		"",
		"🔑 VK access token",
		"   1. Create a standalone app at https://vk.com/apps?act=manage",
		"   2. Open the implicit flow URL with scope=photos:",
		"      https://oauth.vk.com/authorize?client_id=<app id>&display=page",
		"      &redirect_uri=https://oauth.vk.com/blank.html&scope=photos",
		"      &response_type=token&v=5.131",
		"   3. Approve access and copy access_token from the redirected URL",
		"",
		"💾 Yandex Disk OAuth token",
		"   1. Open https://yandex.ru/dev/disk/poligon/",
		"   2. Click \"Get OAuth token\" and sign in",
		"   3. Copy the token shown on the page",
		"",
		"⚠️  Both tokens grant access to your accounts. Never share them.",
		"   vkbackup keeps stored tokens in the system keychain or in an",
		"   encrypted file.",
		rule,
	}
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}

// ShowQuickTokenGuide writes a one-line reminder for experienced users
func ShowQuickTokenGuide(w io.Writer) {
	fmt.Fprintln(w, "🔑 Need: a VK token with scope=photos and a Yandex Disk OAuth token. Type 'help' for details.")
}
