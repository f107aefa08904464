// tui.go
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gradelab/backend/dataset"
	"github.com/gradelab/backend/grading"
)

type mode int

const (
	modeGrade mode = iota
	modeScore
	modeJump
	modePrompt
)

type model struct {
	srvc *grading.GradingSrvc
	view grading.StateView

	mode   mode
	input  textinput.Model
	status string
}

func initialModel(srvc *grading.GradingSrvc, status string) model {
	ti := textinput.New()
	ti.CharLimit = 200

	return model{
		srvc:   srvc,
		view:   srvc.View(),
		input:  ti,
		status: status,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.mode != modeGrade {
		return m.updateInput(keyMsg)
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "left", "h":
		m.view, _ = m.srvc.Prev()
	case "right", "l":
		m.view, _ = m.srvc.Next()
	case "1", "2", "3", "4", "5":
		tier, _ := strconv.Atoi(keyMsg.String())
		view, err := m.srvc.SelectTier(tier - 1)
		if err == nil {
			m.view = view
			m.status = fmt.Sprintf("已套用档位默认分 %d", grading.Tiers[tier-1].Default)
		}
	case "s":
		m.mode = modeScore
		m.input.Placeholder = "0-15"
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink
	case "g":
		m.mode = modeJump
		m.input.Placeholder = fmt.Sprintf("1-%d", m.view.Total)
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink
	case "p":
		m.mode = modePrompt
		m.input.Placeholder = "作文题目"
		m.input.SetValue(m.view.Prompt)
		m.input.Focus()
		return m, textinput.Blink
	case "w":
		view, err := m.srvc.Save()
		if err == nil {
			m.view = view
			m.status = "进度已保存到本地文件！"
		}
	case "x":
		m.exportResults()
	}
	return m, nil
}

func (m model) updateInput(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "esc":
		m.mode = modeGrade
		m.input.Blur()
		return m, nil
	case "enter":
		value := m.input.Value()
		m.input.Blur()
		entered := m.mode
		m.mode = modeGrade
		m.applyInput(entered, value)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(keyMsg)
	return m, cmd
}

func (m *model) applyInput(inputMode mode, value string) {
	switch inputMode {
	case modeScore:
		score, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			m.status = "分数必须是数字"
			return
		}
		view, err := m.srvc.SetScore(-1, score)
		if err != nil {
			m.status = err.Error()
			return
		}
		m.view = view
		m.status = fmt.Sprintf("第 %d 份已评 %d 分", view.CurrentIndex+1, score)
	case modeJump:
		target, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			m.status = "跳转位置必须是数字"
			return
		}
		m.view, _ = m.srvc.JumpTo(target)
		m.status = ""
	case modePrompt:
		view, err := m.srvc.SetPrompt(value)
		if err != nil {
			m.status = err.Error()
			return
		}
		m.view = view
		m.status = "作文题目已更新"
	}
}

func (m *model) exportResults() {
	content, err := m.srvc.Export()
	if err != nil {
		m.status = err.Error()
		return
	}
	if err := os.WriteFile(dataset.ExportFileName, content, 0o644); err != nil {
		m.status = fmt.Sprintf("导出失败: %v", err)
		return
	}
	m.status = fmt.Sprintf("已导出到 %s", dataset.ExportFileName)
}
