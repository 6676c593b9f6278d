package service

import (
	"fmt"
	"inclusive_edu_backend/internal/model"
)

// SimplifiedQuestions 生成一套降低难度的等量题组。
// 变换是纯函数且按题目位置确定：同一输入位置永远产出同一道题，
// 同一场会话里反复渲染"简化卷"得到完全一致的内容。
// 数值学科替换为按位置播种的算术恒等题，
// 非数值学科替换为从原题答案衍生的二选辨认题。
func SimplifiedQuestions(subject model.Subject, questions []model.Question) []model.Question {
	out := make([]model.Question, len(questions))
	for i, q := range questions {
		s := q
		if subject.Numeric() {
			n := i + 1
			s.Text = fmt.Sprintf("Basic Task %d: %d + 1 = ?", n, n)
			// 固定干扰项10在 n=6/n=9 处会撞上 n+4/n+1，撞上时换成 n+2
			tail := "10"
			if n+1 == 10 || n+4 == 10 {
				tail = fmt.Sprintf("%d", n+2)
			}
			s.Options = model.StringSlice{
				fmt.Sprintf("%d", n+1),
				fmt.Sprintf("%d", n+4),
				"0",
				tail,
			}
			s.CorrectOption = 0
		} else {
			answer := ""
			if q.CorrectOption >= 0 && q.CorrectOption < len(q.Options) {
				answer = q.Options[q.CorrectOption]
			}
			s.Text = fmt.Sprintf("Simple Science: Is a %s something we can see?", answer)
			s.Options = model.StringSlice{"Yes", "No", "Maybe", "Never"}
			s.CorrectOption = 0
		}
		out[i] = s
	}
	return out
}
