package view

// NameTable maps component keys to display names. It is configuration,
// loaded from the config file; nothing in here depends on its contents.
type NameTable map[string]string

// DefaultNames is the table shipped with the dashboard. Keys carry an ordinal
// prefix so that a sorted key list reads top to bottom.
func DefaultNames() NameTable {
	return NameTable{
		"1_external_users":    "External Users",
		"2_github_pages":      "GitHub Pages",
		"3_cloudflare_tunnel": "Cloudflare Quick Tunnel",
		"4_service_tunnel":    "Service: NavixyQuickTunnel",
		"5_service_api":       "Service: NavixyApi",
		"6_navixy_api":        "Navixy API Connection",
		"7_data_flow":         "Data Flow Status",
		"8_tunnel_url":        "Tunnel URL Status",
		"9_api_response":      "API Response Status",
		"10_service_health":   "Service Health",
		"11_system_status":    "Overall System Status",
	}
}

// DisplayName resolves name, then the table, then the raw key.
func (t NameTable) DisplayName(key string, name *string) string {
	if name != nil && *name != "" {
		return *name
	}
	if n, ok := t[key]; ok && n != "" {
		return n
	}
	return key
}
