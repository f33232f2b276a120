package analytics

import "strings"

// ExtractLocation 把場地地址收斂成 "City, ST, Country" 的分布 key。
// 常見格式是 "Street, City, State ZIP, Country"；拆不出來就原樣回傳。
func ExtractLocation(address string) string {
	if address == "" {
		return "Unknown"
	}

	parts := strings.Split(address, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if len(parts) >= 3 {
		city := parts[len(parts)-3]
		stateZip := strings.Fields(parts[len(parts)-2])
		state := ""
		if len(stateZip) > 0 {
			state = stateZip[0]
		}
		country := parts[len(parts)-1]
		return city + ", " + state + ", " + country
	}
	if len(parts) == 2 {
		// 簡化格式 "City, Country"
		return address
	}
	return address
}
