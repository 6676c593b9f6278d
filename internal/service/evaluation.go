package service

import (
	"inclusive_edu_backend/internal/model"
	"inclusive_edu_backend/internal/util"
	"math"
)

// Score 按索引对齐的答卷评分，返回 [0,100] 的整数百分比。
// 空卷（零题）是调用方错误，不允许悄悄算成 0% 或 100%。
// 未作答（nil）按答错计。四舍五入只在最终百分比上做一次。
func Score(questions []model.Question, answers []*int) (int, error) {
	if len(questions) == 0 {
		return 0, util.ErrInvalidTest
	}
	if len(answers) > len(questions) {
		return 0, util.ErrAnswerCount
	}

	correct := 0
	for i, q := range questions {
		if i >= len(answers) || answers[i] == nil {
			continue
		}
		if *answers[i] == q.CorrectOption {
			correct++
		}
	}

	percent := int(math.Round(float64(correct) / float64(len(questions)) * 100))
	return percent, nil
}
