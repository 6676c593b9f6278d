package service

import (
	"context"
	"fmt"
	"inclusive_edu_backend/internal/model"
	"inclusive_edu_backend/internal/repository"
	"inclusive_edu_backend/internal/util"
	"inclusive_edu_backend/pkg/logger"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LessonService 课程目录管理：媒资上传、探测、音轨抽取、题库维护。
// HasAudio/HasVideo 来自 ffmpeg 的真实探测结果，直接决定
// 盲生/聋生的可见范围，不允许录入端随意标注。
type LessonService struct {
	LessonRepo   *repository.LessonRepository
	QuestionRepo *repository.QuestionRepository
	Storage      *StorageService
}

func NewLessonService(lessonRepo *repository.LessonRepository, questionRepo *repository.QuestionRepository, storage *StorageService) *LessonService {
	return &LessonService{
		LessonRepo:   lessonRepo,
		QuestionRepo: questionRepo,
		Storage:      storage,
	}
}

// CreateLessonWithMedia 建课并挂媒资。mediaPath 是已落盘的临时文件；
// 探测出音轨的视频会顺带抽一份纯音频，盲生听这份。
func (s *LessonService) CreateLessonWithMedia(ctx context.Context, lesson *model.Lesson, mediaPath string) error {
	info, err := util.ProbeMedia(mediaPath)
	if err != nil {
		return err
	}

	objectKey := fmt.Sprintf("lessons/%s%s", uuid.New().String(), filepath.Ext(mediaPath))
	url, err := s.Storage.UploadFile(ctx, objectKey, mediaPath, mediaContentType(mediaPath))
	if err != nil {
		return err
	}

	lesson.DurationSec = int(info.Duration)
	lesson.HasVideo = info.Width > 0
	lesson.HasAudio = info.HasAudio
	if lesson.HasVideo {
		lesson.VideoURL = url
	} else {
		lesson.AudioURL = url
	}

	// 有音轨的视频抽出纯音频版本
	if lesson.HasVideo && info.HasAudio {
		audioPath := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath)) + ".mp3"
		if err := util.ExtractAudioTrack(mediaPath, audioPath); err != nil {
			logger.Log.Warn("音轨抽取失败，课程仅保留视频",
				zap.String("media", mediaPath), zap.Error(err))
			lesson.HasAudio = false
		} else {
			audioKey := fmt.Sprintf("lessons/%s.mp3", uuid.New().String())
			audioURL, err := s.Storage.UploadFile(ctx, audioKey, audioPath, "audio/mpeg")
			if err != nil {
				return err
			}
			lesson.AudioURL = audioURL
			os.Remove(audioPath)
		}
	}

	return s.LessonRepo.Create(lesson)
}

// CreateLesson 纯文本建课（无媒资），一般配合后续补传使用。
func (s *LessonService) CreateLesson(lesson *model.Lesson) error {
	return s.LessonRepo.Create(lesson)
}

func (s *LessonService) UpdateLesson(lesson *model.Lesson) error {
	return s.LessonRepo.Update(lesson)
}

func (s *LessonService) GetLesson(id uint) (*model.Lesson, error) {
	return s.LessonRepo.FindByID(id)
}

func (s *LessonService) ListLessons(page, limit int) ([]model.Lesson, int64, error) {
	return s.LessonRepo.List(page, limit)
}

// AddQuestion 题目入库。主题测验题必须挂课程，安置/期末题必须不挂。
func (s *LessonService) AddQuestion(q *model.Question) error {
	switch q.Kind {
	case model.TestTopic, model.TestModule:
		if q.LessonID == nil {
			return util.ErrLessonNotFound
		}
		if _, err := s.LessonRepo.FindByID(*q.LessonID); err != nil {
			return err
		}
	case model.TestPlacement, model.TestFinal:
		q.LessonID = nil
	default:
		return util.ErrUnknownTestKind
	}
	return s.QuestionRepo.Create(q)
}

func (s *LessonService) DeleteQuestion(id uint) error {
	return s.QuestionRepo.Delete(id)
}

func mediaContentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4":
		return "video/mp4"
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".webm":
		return "video/webm"
	default:
		return "application/octet-stream"
	}
}
