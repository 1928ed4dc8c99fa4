package report

import (
	"golang.org/x/text/language"
)

// Resource names a query target in error messages.
type Resource int

const (
	ResourceVehicles Resource = iota
	ResourceStatus
	ResourceCharges
	ResourceDrives
	ResourceBatteryHealth
)

// Catalog holds every user-visible string of one display language.
type Catalog struct {
	Tag language.Tag

	// Two-state labels.
	Yes, No      string
	On, Off      string
	Open, Closed string

	NotAvailable string
	Unknown      string // Format taking the command prefix.
	NoVehicleID  string
	NoCharges    string
	NoDrives     string
	HelpTitle    string // Format taking the version.
	HelpCommands map[string]string

	StatusFailed  string // Format taking the resource name and status code.
	QueryFailed   string // Format taking the resource name.
	ResourceNames map[Resource]string

	VehiclesHeader      string
	VehicleFields       vehicleLabels
	StatusFields        statusLabels
	ChargesHeader       string
	ChargeFields        recordLabels
	DrivesHeader        string
	DriveFields         recordLabels
	BatteryHealthHeader string
	BatteryHealthFields batteryHealthLabels
}

type vehicleLabels struct {
	ID, Name, Model, Color string
}

type statusLabels struct {
	Vehicle, State, Since, Odometer                  string
	ClosuresHeader                                   string
	Locked, Sentry, Windows, Doors, Trunk, Frunk     string
	BatteryHeader, Level, EstRange, RatedRange       string
	ChargingHeader, ChargingState, ChargeLimit       string
	ClimateHeader, Climate, InsideTemp, OutsideTemp  string
	SoftwareHeader, SoftwareVersion, UpdateAvailable string
}

type recordLabels struct {
	Start, End, Address, StartAddress, EndAddress string
	EnergyAdded, Cost, Duration, Distance         string
	AvgSpeed, MaxSpeed, BatteryChange             string
}

type batteryHealthLabels struct {
	Health, CurrentCapacity, MaxCapacity, CurrentRange, MaxRange, Efficiency string
}

// English is the default catalog.
var English = &Catalog{
	Tag:          language.English,
	Yes:          "yes",
	No:           "no",
	On:           "on",
	Off:          "off",
	Open:         "open",
	Closed:       "closed",
	NotAvailable: "n/a",
	Unknown:      "Unknown command, use `%s help` for help.",
	NoVehicleID:  "Unable to resolve vehicle ID",
	NoCharges:    "No charge records",
	NoDrives:     "No drive records",
	HelpTitle:    "TeslaMate API - V%s",
	HelpCommands: map[string]string{
		"cars":    "List vehicles",
		"status":  "Show vehicle status",
		"charges": "Show recent charges",
		"drives":  "Show recent drives",
		"battery": "Show battery health",
		"help":    "Show this help",
	},
	StatusFailed: "Failed to fetch %s, status code: %d",
	QueryFailed:  "An error occurred while fetching %s",
	ResourceNames: map[Resource]string{
		ResourceVehicles:      "vehicle list",
		ResourceStatus:        "status",
		ResourceCharges:       "charge records",
		ResourceDrives:        "drive records",
		ResourceBatteryHealth: "battery health",
	},
	VehiclesHeader: "🚗 Vehicles:",
	VehicleFields:  vehicleLabels{ID: "ID", Name: "Name", Model: "Model", Color: "Color"},
	StatusFields: statusLabels{
		Vehicle:         "🚗 Vehicle",
		State:           "📍 State",
		Since:           "⏰ Since",
		Odometer:        "📏 Odometer",
		ClosuresHeader:  "🔒 Doors:",
		Locked:          "Locked",
		Sentry:          "Sentry mode",
		Windows:         "Windows",
		Doors:           "Doors",
		Trunk:           "Trunk",
		Frunk:           "Frunk",
		BatteryHeader:   "🔋 Battery:",
		Level:           "Level",
		EstRange:        "Estimated range",
		RatedRange:      "Rated range",
		ChargingHeader:  "⚡ Charging:",
		ChargingState:   "Charging state",
		ChargeLimit:     "Charge limit",
		ClimateHeader:   "🌡️ Climate:",
		Climate:         "Climate",
		InsideTemp:      "Inside",
		OutsideTemp:     "Outside",
		SoftwareHeader:  "📱 Software:",
		SoftwareVersion: "Version",
		UpdateAvailable: "Update available",
	},
	ChargesHeader: "🔌 Recent charges:",
	DrivesHeader:  "🚗 Recent drives:",
	ChargeFields: recordLabels{
		Start:         "Start",
		End:           "End",
		Address:       "Address",
		EnergyAdded:   "Energy added",
		Cost:          "Cost",
		Duration:      "Duration",
		BatteryChange: "Battery",
	},
	DriveFields: recordLabels{
		Start:         "Start",
		End:           "End",
		StartAddress:  "From",
		EndAddress:    "To",
		Distance:      "Distance",
		Duration:      "Duration",
		AvgSpeed:      "Average speed",
		MaxSpeed:      "Max speed",
		BatteryChange: "Battery",
	},
	BatteryHealthHeader: "🔋 Battery health:",
	BatteryHealthFields: batteryHealthLabels{
		Health:          "Health",
		CurrentCapacity: "Current capacity",
		MaxCapacity:     "Max capacity",
		CurrentRange:    "Current range",
		MaxRange:        "Max range",
		Efficiency:      "Rated efficiency",
	},
}

// Chinese is the Simplified Chinese catalog.
var Chinese = &Catalog{
	Tag:          language.SimplifiedChinese,
	Yes:          "是",
	No:           "否",
	On:           "开",
	Off:          "关",
	Open:         "开",
	Closed:       "关",
	NotAvailable: "无",
	Unknown:      "未知指令，请使用 `%s help` 查看帮助。",
	NoVehicleID:  "无法获取车辆ID",
	NoCharges:    "无充电记录",
	NoDrives:     "无驾驶记录",
	HelpTitle:    "TeslaMate API - V%s",
	HelpCommands: map[string]string{
		"cars":    "获取车辆列表",
		"status":  "获取车辆状态",
		"charges": "获取充电记录",
		"drives":  "获取驾驶记录",
		"battery": "获取电池健康度",
		"help":    "获取帮助",
	},
	StatusFailed: "获取%s失败，状态码: %d",
	QueryFailed:  "获取%s时发生错误",
	ResourceNames: map[Resource]string{
		ResourceVehicles:      "车辆信息",
		ResourceStatus:        "状态",
		ResourceCharges:       "充电记录",
		ResourceDrives:        "驾驶记录",
		ResourceBatteryHealth: "电池健康度",
	},
	VehiclesHeader: "🚗 车辆列表：",
	VehicleFields:  vehicleLabels{ID: "ID", Name: "名称", Model: "型号", Color: "颜色"},
	StatusFields: statusLabels{
		Vehicle:         "🚗 车辆",
		State:           "📍 状态",
		Since:           "⏰ 自上次状态以来",
		Odometer:        "📏 里程表",
		ClosuresHeader:  "🔒 车门状态:",
		Locked:          "锁定",
		Sentry:          "哨兵模式",
		Windows:         "车窗",
		Doors:           "车门",
		Trunk:           "后备箱",
		Frunk:           "前备箱",
		BatteryHeader:   "🔋 电池:",
		Level:           "电量",
		EstRange:        "预计续航",
		RatedRange:      "额定续航",
		ChargingHeader:  "⚡ 充电:",
		ChargingState:   "充电状态",
		ChargeLimit:     "充电限制",
		ClimateHeader:   "🌡️ 气候:",
		Climate:         "空调",
		InsideTemp:      "内部温度",
		OutsideTemp:     "外部温度",
		SoftwareHeader:  "📱 版本:",
		SoftwareVersion: "版本号",
		UpdateAvailable: "更新可用",
	},
	ChargesHeader: "🔌 最近充电记录：",
	DrivesHeader:  "🚗 最近驾驶记录：",
	ChargeFields: recordLabels{
		Start:         "开始",
		End:           "结束",
		Address:       "地址",
		EnergyAdded:   "增加电量",
		Cost:          "费用",
		Duration:      "持续时间",
		BatteryChange: "电池变化",
	},
	DriveFields: recordLabels{
		Start:         "开始",
		End:           "结束",
		StartAddress:  "起点",
		EndAddress:    "终点",
		Distance:      "距离",
		Duration:      "持续时间",
		AvgSpeed:      "平均速度",
		MaxSpeed:      "最高速度",
		BatteryChange: "电池变化",
	},
	BatteryHealthHeader: "🔋 电池健康度：",
	BatteryHealthFields: batteryHealthLabels{
		Health:          "健康度",
		CurrentCapacity: "当前容量",
		MaxCapacity:     "最大容量",
		CurrentRange:    "当前续航",
		MaxRange:        "最大续航",
		Efficiency:      "额定效率",
	},
}

var (
	catalogs = []*Catalog{English, Chinese}
	matcher  = language.NewMatcher([]language.Tag{English.Tag, Chinese.Tag})
)

// CatalogFor returns the catalog best matching lang, a BCP 47 tag or Accept-Language value. Unknown
// or empty values select English.
func CatalogFor(lang string) *Catalog {
	if lang == "" {
		return English
	}
	_, index := language.MatchStrings(matcher, lang)
	if index < 0 || index >= len(catalogs) {
		return English
	}
	return catalogs[index]
}

// ResourceName returns the display name of r.
func (c *Catalog) ResourceName(r Resource) string {
	return c.ResourceNames[r]
}
