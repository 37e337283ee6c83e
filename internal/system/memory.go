package system

import (
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/sirupsen/logrus"
)

// lowMemoryThreshold — минимум свободной памяти (байт) для комфортного
// экспорта: кадр 1280x720 RGBA плюс буферы ffmpeg.
const lowMemoryThreshold = 256 << 20

// WarnIfLowMemory логирует состояние памяти перед видеофазой экспорта.
// Нехватка памяти — предупреждение, а не отказ: пул кадров держит
// потребление ограниченным.
func WarnIfLowMemory() {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return
	}

	entry := logrus.WithFields(logrus.Fields{
		"available_mb": vm.Available >> 20,
		"used_pct":     int(vm.UsedPercent),
	})
	if vm.Available < lowMemoryThreshold {
		entry.Warn("мало свободной памяти, экспорт может замедлиться")
		return
	}
	entry.Debug("memory status before export")
}
