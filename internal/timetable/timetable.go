// Package timetable renders a booking's sessions for one week as a PNG grid:
// day columns, hour rows, one colored box per session.
package timetable

import (
	"image"
	"image/color"
	"strconv"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/codetutors/tutorhub/internal/model"
)

const (
	imageWidth      = 1400
	imageHeight     = 900
	headerHeight    = 100
	leftLabelsWidth = 80
	legendWidth     = 120
	dayPaddingX     = 8
	minBoxHeight    = 8.0
	boxRadius       = 6.0
	shadowOffset    = 3.0
	daysInWeek      = 7
	hourPadding     = 2
	defaultMinHour  = 8
	defaultMaxHour  = 20
)

var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{150, 150, 150, 255}
	todayBgColor   = color.NRGBA{255, 99, 71, 125}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{220, 220, 220, 255}

	pendingColor    = color.RGBA{255, 182, 193, 255}
	paidColor       = color.RGBA{133, 193, 85, 220}
	boxDefaultColor = color.RGBA{220, 220, 220, 200}
	boxTextColor    = color.RGBA{20, 24, 28, 230}
	boxShadowColor  = color.RGBA{0, 0, 0, 20}

	legendTextColor = color.RGBA{70, 74, 78, 220}
)

type hourRange struct {
	start int
	end   int
	total int
}

// WeekStart returns the Monday of the week containing t, at midnight.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	sinceMonday := int(day.Weekday()) - 1
	if day.Weekday() == time.Sunday {
		sinceMonday = 6
	}
	return day.AddDate(0, 0, -sinceMonday)
}

// Render draws the sessions that fall inside the week starting at weekStart.
// Sessions outside the week are skipped.
func Render(weekStart time.Time, sessions []*model.Session) image.Image {
	weekEnd := weekStart.AddDate(0, 0, 6)
	today := truncateToDay(time.Now().UTC())
	highlightToday := !today.Before(weekStart) && !today.After(weekEnd)

	byDay := groupByDay(sessions, weekStart, weekEnd)
	hours := calculateHourRange(byDay)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(bgColor)
	dc.Clear()

	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / daysInWeek
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawHeader(dc, weekStart, weekEnd)
	drawHourLabels(dc, hours, cellHeight)

	day := weekStart
	for i := 0; i < daysInWeek; i++ {
		x := float64(leftLabelsWidth + i*dayWidth)
		y := float64(headerHeight)

		drawDayBackground(dc, x, y, dayWidth, dayHeight, i, highlightToday && day.Equal(today))
		drawDayHeader(dc, day, x, y, dayWidth)
		drawHourLines(dc, x, y, dayWidth, hours, cellHeight)

		for _, sess := range byDay[day.Format("2006-01-02")] {
			drawSession(dc, sess, x, y, dayWidth, hours, cellHeight)
		}

		day = day.AddDate(0, 0, 1)
	}

	drawLegend(dc, dayWidth)

	return dc.Image()
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func groupByDay(sessions []*model.Session, weekStart, weekEnd time.Time) map[string][]*model.Session {
	byDay := make(map[string][]*model.Session)
	for _, sess := range sessions {
		day := truncateToDay(sess.SessionDate)
		if day.Before(weekStart) || day.After(weekEnd) {
			continue
		}
		key := day.Format("2006-01-02")
		byDay[key] = append(byDay[key], sess)
	}
	return byDay
}

func calculateHourRange(byDay map[string][]*model.Session) hourRange {
	minHour := 24
	maxHour := 0

	for _, sessions := range byDay {
		for _, sess := range sessions {
			startH := sess.Start().Hour()
			end := sess.End()
			endH := end.Hour()
			if end.Minute() > 0 {
				endH++
			}
			if startH < minHour {
				minHour = startH
			}
			if endH > maxHour {
				maxHour = endH
			}
		}
	}

	if minHour == 24 {
		minHour = defaultMinHour
		maxHour = defaultMaxHour
	}

	start := minHour - hourPadding
	end := maxHour + hourPadding
	if start < 0 {
		start = 0
	}
	if end > 23 {
		end = 23
	}

	return hourRange{start: start, end: end, total: end - start + 1}
}

func drawHeader(dc *gg.Context, weekStart, weekEnd time.Time) {
	title := weekStart.Month().String()
	if weekEnd.Month() != weekStart.Month() {
		title += " - " + weekEnd.Month().String()
	}

	dc.SetColor(textColor)
	w, h := dc.MeasureString(title)
	dc.DrawStringAnchored(title, float64(imageWidth)/2-w/2, float64(headerHeight)/4+h/2, 0, 0)
}

func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	dc.SetColor(hourLabelColor)

	for i := 0; i < hours.total; i++ {
		y := float64(headerHeight) + float64(i)*cellHeight
		dc.DrawStringAnchored(hourLabel(hours.start+i), float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int, isToday bool) {
	switch {
	case isToday:
		dc.SetColor(todayBgColor)
	case dayIndex%2 == 0:
		dc.SetColor(evenDayColor)
	default:
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

func drawDayHeader(dc *gg.Context, date time.Time, x, y float64, dayWidth int) {
	dc.SetColor(textColor)
	dc.DrawStringAnchored(date.Format("02.01"), x+float64(dayWidth)/2, y, 0.5, -2)
	dc.DrawStringAnchored(date.Weekday().String()[:3], x+float64(dayWidth)/2, y, 0.5, -0.5)
}

func drawHourLines(dc *gg.Context, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)

	for i := 0; i <= hours.total; i++ {
		hy := y + float64(i)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

func drawSession(dc *gg.Context, sess *model.Session, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	start := sess.Start()
	end := sess.End()
	startHour := float64(start.Hour()) + float64(start.Minute())/60.0
	endHour := float64(end.Hour()) + float64(end.Minute())/60.0
	if end.Day() != start.Day() {
		endHour = 24
	}

	boxY := y + (startHour-float64(hours.start))*cellHeight
	boxHeight := (endHour - startHour) * cellHeight
	if boxHeight < minBoxHeight {
		boxHeight = minBoxHeight
	}
	boxWidth := float64(dayWidth) - float64(dayPaddingX*2)

	fill := sessionColor(sess.PaymentStatus)

	dc.SetColor(boxShadowColor)
	dc.DrawRoundedRectangle(x+dayPaddingX+shadowOffset, boxY+2+shadowOffset, boxWidth, boxHeight-4, boxRadius)
	dc.Fill()

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), boxY+2, boxWidth, boxHeight-4, boxRadius)
	dc.Fill()

	dc.SetColor(darken(fill, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), boxY+2, boxWidth, boxHeight-4, boxRadius)
	dc.Stroke()

	dc.SetColor(boxTextColor)
	txtX := x + float64(dayPaddingX) + 8
	txtY := boxY + 18
	dc.DrawStringAnchored(start.Format("15:04"), txtX, txtY, 0, 0)

	if boxHeight > 25 {
		dc.DrawStringAnchored(string(sess.Venue), txtX, txtY+16, 0, 0)
	}
}

func sessionColor(status model.PaymentStatus) color.RGBA {
	switch status {
	case model.PaymentPending:
		return pendingColor
	case model.PaymentSuccessful:
		return paidColor
	default:
		return boxDefaultColor
	}
}

func darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

func drawLegend(dc *gg.Context, dayWidth int) {
	x := float64(leftLabelsWidth + daysInWeek*dayWidth + 10)
	y := float64(imageHeight) - 78.0

	items := []struct {
		label string
		clr   color.Color
	}{
		{"Pending", pendingColor},
		{"Paid", paidColor},
	}

	boxW, boxH := 20.0, 14.0
	for _, item := range items {
		dc.SetColor(item.clr)
		dc.DrawRoundedRectangle(x, y, boxW, boxH, 3)
		dc.Fill()

		dc.SetColor(legendTextColor)
		dc.DrawStringAnchored(item.label, x+boxW+8, y+boxH/2+1, 0, 0.2)
		y += boxH + 14
	}
}

func hourLabel(h int) string {
	if h < 10 {
		return "0" + strconv.Itoa(h) + ":00"
	}
	return strconv.Itoa(h) + ":00"
}
