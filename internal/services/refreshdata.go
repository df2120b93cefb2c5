package services

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/GregMSThompson/dashboard-builder/internal/dto"
)

// generateData returns a type-shaped synthetic payload, or nil for types
// without live data (text).
func generateData(widgetType string) any {
	switch widgetType {
	case dto.WidgetTypeMetric:
		return generateMetricData(1000)
	case dto.WidgetTypeChart:
		return generateChartData()
	case dto.WidgetTypeTable:
		return generateTableData()
	default:
		return nil
	}
}

// generateMetricData varies baseValue by up to ±15% per tick.
func generateMetricData(baseValue float64) dto.MetricData {
	variation := (rand.Float64() - 0.5) * 0.3
	value := int(math.Round(baseValue * (1 + variation)))
	change := math.Round(variation*100*10) / 10

	formatted := fmt.Sprintf("$%d", value)
	if value > 1000 {
		formatted = fmt.Sprintf("$%.1fk", float64(value)/1000)
	}

	trend := dto.TrendNeutral
	if change > 0 {
		trend = dto.TrendUp
	} else if change < 0 {
		trend = dto.TrendDown
	}

	sign := ""
	if change > 0 {
		sign = "+"
	}

	return dto.MetricData{
		Value:  formatted,
		Change: fmt.Sprintf("%s%.1f%%", sign, change),
		Trend:  trend,
		Label:  "Real-time Value",
		Period: "vs last update",
	}
}

var chartMonths = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}

func generateChartData() []dto.ChartPoint {
	points := make([]dto.ChartPoint, len(chartMonths))
	for i, month := range chartMonths {
		points[i] = dto.ChartPoint{
			Name:    month,
			Value:   200 + rand.Intn(301),
			Revenue: 2000 + rand.Intn(8001),
		}
	}
	return points
}

var (
	tableNames    = []string{"John Doe", "Jane Smith", "Bob Johnson", "Alice Brown", "Charlie Wilson"}
	tableStatuses = []string{"Active", "Inactive", "Pending"}
)

func generateTableData() []dto.TableRow {
	rows := make([]dto.TableRow, len(tableNames))
	for i, name := range tableNames {
		rows[i] = dto.TableRow{
			ID:      i + 1,
			Name:    name,
			Email:   strings.ReplaceAll(strings.ToLower(name), " ", ".") + "@example.com",
			Status:  tableStatuses[rand.Intn(len(tableStatuses))],
			Revenue: fmt.Sprintf("$%d", 1000+rand.Intn(5001)),
		}
	}
	return rows
}
