package security

import (
	"testing"
	"time"
)

func TestImageURLGuard_ValidateURL(t *testing.T) {
	guard := NewImageURLGuard(5 * time.Second)

	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		// 正常系
		{"valid https URL", "https://example.com/images/note.png", false},
		{"valid http URL", "http://example.com/images/note.png", false},
		{"URL with port 443", "https://example.com:443/note.png", false},
		{"URL with path and query", "https://cdn.example.com/img/a.png?v=2", false},
		{"public IP address", "https://93.184.216.34/note.png", false},

		// スキーム検証
		{"ftp scheme", "ftp://example.com/note.png", true},
		{"file scheme", "file:///etc/passwd", true},
		{"javascript scheme", "javascript:alert(1)", true},
		{"gopher scheme", "gopher://example.com/", true},
		{"empty URL", "", true},
		{"no scheme", "example.com/note.png", true},

		// プライベートIPブロック
		{"private IP 10.x", "http://10.0.0.1/img.png", true},
		{"private IP 172.16.x", "http://172.16.0.1/img.png", true},
		{"private IP 192.168.x", "http://192.168.1.1/img.png", true},

		// ループバックブロック
		{"loopback IP", "http://127.0.0.1/img.png", true},
		{"loopback IP range", "http://127.1.2.3/img.png", true},
		{"localhost hostname", "http://localhost/img.png", true},
		{"localhost uppercase", "http://LOCALHOST/img.png", true},
		{"IPv6 loopback", "http://[::1]/img.png", true},

		// リンクローカル・メタデータブロック
		{"cloud metadata IP", "http://169.254.169.254/latest/meta-data/", true},
		{"link local IP", "http://169.254.0.1/img.png", true},
		{"current network", "http://0.0.0.0/img.png", true},
		{"IPv6 link local", "http://[fe80::1]/img.png", true},
		{"IPv6 unique local", "http://[fc00::1]/img.png", true},

		// 不正なURL
		{"empty host", "http:///img.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := guard.ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestImageURLGuard_ValidateURL_PortBoundaries(t *testing.T) {
	guard := NewImageURLGuard(5 * time.Second)

	// ポート番号付きでもホスト検証が機能すること
	if err := guard.ValidateURL("http://127.0.0.1:8080/img.png"); err == nil {
		t.Error("expected error for loopback with port, got nil")
	}
	if err := guard.ValidateURL("http://192.168.1.1:3000/img.png"); err == nil {
		t.Error("expected error for private IP with port, got nil")
	}
}
