// pattern: Functional Core

package tui

import (
	"strings"

	"planeui/internal/web"
)

// RenderPlaneMap draws a front-on projection of a session's visible pages
// into a cols×rows character grid. Plane-local y points up while terminal
// rows point down, so y flips during scaling. Pages later in the list
// overdraw earlier ones.
func RenderPlaneMap(pages []web.PageInfo, cols, rows int) string {
	if len(pages) == 0 || cols < 4 || rows < 2 {
		return ""
	}

	minX, maxX := pages[0].X, pages[0].X+pages[0].W
	minY, maxY := pages[0].Y-pages[0].H, pages[0].Y
	for _, p := range pages[1:] {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X+p.W)
		minY = min(minY, p.Y-p.H)
		maxY = max(maxY, p.Y)
	}
	spanX, spanY := maxX-minX, maxY-minY
	if spanX <= 0 || spanY <= 0 {
		return ""
	}
	sx := float64(cols-1) / spanX
	sy := float64(rows-1) / spanY

	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = make([]rune, cols)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	for _, p := range pages {
		left := scale((p.X-minX)*sx, cols-1)
		right := scale((p.X+p.W-minX)*sx, cols-1)
		top := scale((maxY-p.Y)*sy, rows-1)
		bottom := scale((maxY-p.Y+p.H)*sy, rows-1)
		if right <= left || bottom <= top {
			continue
		}

		for x := left + 1; x < right; x++ {
			grid[top][x] = '─'
			grid[bottom][x] = '─'
		}
		for y := top + 1; y < bottom; y++ {
			grid[y][left] = '│'
			grid[y][right] = '│'
		}
		grid[top][left] = '┌'
		grid[top][right] = '┐'
		grid[bottom][left] = '└'
		grid[bottom][right] = '┘'

		for i, r := range p.Title {
			x := left + 1 + i
			if x >= right {
				break
			}
			grid[top][x] = r
		}
	}

	lines := make([]string, rows)
	for i, row := range grid {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}

func scale(v float64, limit int) int {
	i := int(v + 0.5)
	if i < 0 {
		return 0
	}
	if i > limit {
		return limit
	}
	return i
}
