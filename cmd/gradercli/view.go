package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gradelab/backend/grading"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3498db"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e056fd"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#e74c3c"))
)

func (m model) View() string {
	v := m.view
	var b strings.Builder

	b.WriteString(headerStyle.Render(
		fmt.Sprintf("批改中：第 %d / %d 份（已批改 %d 份）", v.CurrentIndex+1, v.Total, v.GradedCount)))
	b.WriteString("\n\n")

	if v.Prompt != "" {
		b.WriteString("题目: " + v.Prompt + "\n")
	}
	b.WriteString("评分标准: " + v.CurrentRubric + "\n")
	b.WriteString(dimStyle.Render("图片1: "+v.CurrentImage1) + "\n")
	b.WriteString(dimStyle.Render("图片2: "+v.CurrentImage2) + "\n\n")

	b.WriteString(m.scoreLine())
	b.WriteString("\n")

	for i, tier := range grading.Tiers {
		b.WriteString(fmt.Sprintf("  %d. %s", i+1, tier.Label))
	}
	b.WriteString("\n\n")

	switch m.mode {
	case modeScore:
		b.WriteString("输入具体分数: " + m.input.View() + "\n")
	case modeJump:
		b.WriteString("跳转至: " + m.input.View() + "\n")
	case modePrompt:
		b.WriteString("作文题目: " + m.input.View() + "\n")
	default:
		b.WriteString(dimStyle.Render("←/→ 切换  1-5 档位  s 具体分数  g 跳转  p 题目  w 保存  x 导出  q 退出"))
		b.WriteString("\n")
	}

	if v.SaveWarning != "" {
		b.WriteString(warnStyle.Render(v.SaveWarning) + "\n")
	} else if !v.LastSavedAt.IsZero() {
		b.WriteString(dimStyle.Render("最后保存时间: "+v.LastSavedAt.Format("15:04:05")) + "\n")
	}
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}

	return b.String()
}

// scoreLine renders the 0-15 score blocks with the current row's score
// highlighted, mirroring the clickable blocks of the web UI.
func (m model) scoreLine() string {
	v := m.view
	parts := make([]string, 0, grading.MaxScore+1)
	for score := 0; score <= grading.MaxScore; score++ {
		label := fmt.Sprintf("[%2d]", score)
		if v.CurrentScore == score {
			label = selectedStyle.Render(label)
		}
		parts = append(parts, label)
	}
	line := strings.Join(parts[:8], " ") + "\n" + strings.Join(parts[8:], " ") + "\n"
	if v.CurrentScore == grading.Unscored {
		line += dimStyle.Render("当前作文尚未评分") + "\n"
	} else {
		line += fmt.Sprintf("当前作文最终得分：%d 分\n", v.CurrentScore)
	}
	return line
}
