// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package i18n

import "fmt"

// messages is the UI string catalog keyed by language, then message key.
// Keys with format verbs are rendered through fmt.Sprintf by T.
var messages = map[Language]map[string]string{
	Chinese: {
		"app.title":                      "我的足迹地图",
		"app.reset":                      "重新开始",
		"common.all":                     "全部",
		"common.filter":                  "筛选",
		"common.year":                    "年份",
		"common.search":                  "搜索地点或描述...",
		"common.clearFilter":             "清除筛选",
		"common.showAllLocations":        "显示所有地点",
		"common.selectFromList":          "从列表或地图上选择一个地点查看详情",
		"common.close":                   "关闭",
		"common.loading":                 "正在加载地点数据...",
		"list.title":                     "我去过的地方",
		"list.stats":                     "共 %d 个地点",
		"list.statsFiltered":             "（总计 %d 个）",
		"list.noLocations":               "没有找到符合条件的地点",
		"location.visitDate":             "访问日期：",
		"categories.city":                "城市",
		"categories.nature":              "自然景观",
		"categories.historical":          "历史遗迹",
		"categories.food":                "美食",
		"categories.other":               "其他",
		"creator.title":                  "添加新地点",
		"creator.name":                   "地点名称",
		"creator.namePlaceholder":        "输入地点名称",
		"creator.description":            "描述",
		"creator.descriptionPlaceholder": "写下你对这个地方的印象",
		"creator.date":                   "访问日期",
		"creator.category":               "分类",
		"creator.coordinates":            "经纬度（经度, 纬度）",
		"creator.generate":               "生成 JSON",
		"creator.alerts.noName":          "请输入地点名称",
		"creator.alerts.noCoordinates":   "请填写经纬度",
		"creator.alerts.badCoordinates":  "经纬度格式不正确，应为“经度, 纬度”",
		"creator.alerts.noDescription":   "请输入地点描述",
		"creator.alerts.noDate":          "请选择访问日期",
		"creator.alerts.badDate":         "访问日期格式应为 YYYY-MM-DD",
		"creator.alerts.jsonCopied":      "JSON 已复制到剪贴板",
		"creator.alerts.copyError":       "复制到剪贴板失败",
		"editor.title":                   "使用说明",
		"editor.step1":                   "1. 填写地点信息并生成 JSON。",
		"editor.step2":                   "2. 将 JSON 粘贴到 locations.json 数组中。",
		"editor.step3":                   "3. 重新部署后即可在地图上看到新地点。",
		"share.qr":                       "分享二维码",
		"footer.copyright":               "© 我的足迹地图",
	},
	English: {
		"app.title":                      "My Footprints Map",
		"app.reset":                      "Start over",
		"common.all":                     "All",
		"common.filter":                  "Filter",
		"common.year":                    "Year",
		"common.search":                  "Search places or descriptions...",
		"common.clearFilter":             "Clear filters",
		"common.showAllLocations":        "Show all locations",
		"common.selectFromList":          "Select a location from the list or the map to see details",
		"common.close":                   "Close",
		"common.loading":                 "Loading location data...",
		"list.title":                     "Places I've Been",
		"list.stats":                     "%d locations",
		"list.statsFiltered":             " (of %d total)",
		"list.noLocations":               "No matching locations",
		"location.visitDate":             "Visit date: ",
		"categories.city":                "City",
		"categories.nature":              "Nature",
		"categories.historical":          "Historical site",
		"categories.food":                "Food",
		"categories.other":               "Other",
		"creator.title":                  "Add a new location",
		"creator.name":                   "Place name",
		"creator.namePlaceholder":        "Enter the place name",
		"creator.description":            "Description",
		"creator.descriptionPlaceholder": "Write down your impressions",
		"creator.date":                   "Visit date",
		"creator.category":               "Category",
		"creator.coordinates":            "Coordinates (lng, lat)",
		"creator.generate":               "Generate JSON",
		"creator.alerts.noName":          "Please enter a place name",
		"creator.alerts.noCoordinates":   "Please enter the coordinates",
		"creator.alerts.badCoordinates":  "Coordinates must look like \"lng, lat\"",
		"creator.alerts.noDescription":   "Please enter a description",
		"creator.alerts.noDate":          "Please pick a visit date",
		"creator.alerts.badDate":         "Visit date must be YYYY-MM-DD",
		"creator.alerts.jsonCopied":      "JSON copied to clipboard",
		"creator.alerts.copyError":       "Failed to copy to clipboard",
		"editor.title":                   "How to use",
		"editor.step1":                   "1. Fill in the place and generate the JSON.",
		"editor.step2":                   "2. Paste the JSON into the locations.json array.",
		"editor.step3":                   "3. Redeploy and the new place shows up on the map.",
		"share.qr":                       "Share QR code",
		"footer.copyright":               "© My Footprints Map",
	},
}

// T returns the message for key in lang, formatted with args when given.
// Unknown languages fall back to DefaultLanguage; unknown keys return the
// key itself so a missing translation is visible but harmless.
func T(lang Language, key string, args ...any) string {
	table, ok := messages[lang]
	if !ok {
		table = messages[DefaultLanguage]
	}
	msg, ok := table[key]
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// CategoryLabel returns the display name of a canonical category for the
// Creator's select options. Unknown labels are returned unchanged.
func CategoryLabel(lang Language, canonical string) string {
	c := ParseCategory(canonical)
	for _, row := range categoryTable {
		if row.kind == c.Kind {
			return T(lang, "categories."+row.en)
		}
	}
	return canonical
}
