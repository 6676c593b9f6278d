package util

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// MediaInfo 课程媒资的探测结果。HasAudio 决定该课能否进入
// 盲生的可见范围，所以上传时必须真实探测，不允许人工勾选。
type MediaInfo struct {
	Duration float64 `json:"duration"` // 秒
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	HasAudio bool    `json:"hasAudio"`
	Format   string  `json:"format"`
	Size     int64   `json:"size"`
}

// ProbeMedia 使用 ffmpeg-go 探测媒体文件的流信息
func ProbeMedia(path string) (*MediaInfo, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("媒体文件不存在: %v", err)
	}

	jsonOutput, err := ffmpeg.Probe(path)
	if err != nil {
		return nil, fmt.Errorf("获取媒体信息失败: %v", err)
	}

	var result struct {
		Streams []struct {
			CodecType string `json:"codec_type"`
			Width     int    `json:"width"`
			Height    int    `json:"height"`
		} `json:"streams"`
		Format struct {
			Duration string `json:"duration"`
			Size     string `json:"size"`
			Format   string `json:"format_name"`
		} `json:"format"`
	}

	if err := json.Unmarshal([]byte(jsonOutput), &result); err != nil {
		return nil, fmt.Errorf("解析媒体信息失败: %v", err)
	}

	info := &MediaInfo{}
	for _, stream := range result.Streams {
		switch stream.CodecType {
		case "video":
			if info.Width == 0 {
				info.Width = stream.Width
				info.Height = stream.Height
			}
		case "audio":
			info.HasAudio = true
		}
	}

	info.Duration, _ = strconv.ParseFloat(result.Format.Duration, 64)

	size, err := strconv.ParseInt(result.Format.Size, 10, 64)
	if err != nil {
		size = fileInfo.Size()
	}
	info.Size = size

	info.Format = "unknown"
	if len(result.Format.Format) > 0 {
		formatParts := strings.Split(result.Format.Format, ",")
		if len(formatParts) > 0 {
			info.Format = formatParts[0]
		}
	}

	return info, nil
}

// ExtractAudioTrack 从视频中抽出纯音频版本，供盲生使用
func ExtractAudioTrack(videoPath, audioPath string) error {
	dir := strings.Replace(audioPath, "\\", "/", -1)
	dirParts := strings.Split(dir, "/")
	if len(dirParts) > 1 {
		dir = strings.Join(dirParts[:len(dirParts)-1], "/")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("创建音频目录失败: %v", err)
		}
	}

	return ffmpeg.Input(videoPath).
		Output(audioPath, ffmpeg.KwArgs{
			"vn":  "",    // 去掉视频流
			"b:a": "128k",
		}).
		OverWriteOutput().
		Run()
}
