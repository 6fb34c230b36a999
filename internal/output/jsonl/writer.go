// Package jsonl 实现报告记录的异步 JSONL 写入。
// 编码与文件 I/O 在后台 goroutine 完成，编码失败会在 Flush/Close 时返回。
package jsonl

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"regime-report/internal/util/timeutil"
)

// Record 报告记录信封
type Record struct {
	// Kind 记录类型，如 two_regimes、label_map、summary_row、classification、tally
	Kind string `json:"kind"`
	// TsUnixNs 生成时间（纳秒）
	TsUnixNs int64 `json:"ts_unix_ns"`
	// Data 记录内容
	Data any `json:"data"`
}

// NewRecord 创建带时间戳的记录
func NewRecord(kind string, data any) Record {
	return Record{Kind: kind, TsUnixNs: timeutil.NowNano(), Data: data}
}

// ErrClosed 写入器已关闭
var ErrClosed = errors.New("jsonl: writer 已关闭")

type opType int

const (
	opWrite opType = iota
	opFlush
	opClose
)

type op struct {
	typ  opType
	val  any
	done chan error
}

// Writer 异步 JSONL 写入器
type Writer struct {
	// path 输出文件路径
	path string
	// ch 操作通道
	ch chan op

	mu     sync.Mutex
	closed bool

	closeOnce sync.Once
	closeErr  error
	wg        sync.WaitGroup
}

// NewWriter 创建 JSONL 写入器（覆盖已有文件）
// 参数 path: 输出文件路径
// 参数 bufferSize: 写入缓冲区大小（channel capacity）
func NewWriter(path string, bufferSize int) (*Writer, error) {
	if bufferSize <= 0 {
		bufferSize = 1000
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("打开输出文件失败: %w", err)
	}

	w := &Writer{
		path: path,
		ch:   make(chan op, bufferSize),
	}
	w.wg.Add(1)
	go w.loop(f)
	return w, nil
}

// Write 投递一条记录
func (w *Writer) Write(v any) error {
	return w.send(op{typ: opWrite, val: v})
}

// Flush 等待已投递记录写入文件
// 返回此前发生的第一个编码或写入错误
func (w *Writer) Flush() error {
	done := make(chan error, 1)
	if err := w.send(op{typ: opFlush, done: done}); err != nil {
		if errors.Is(err, ErrClosed) {
			return nil
		}
		return err
	}
	return <-done
}

// Close 关闭写入器（会先 flush）
func (w *Writer) Close() error {
	if w == nil {
		return nil
	}
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		done := make(chan error, 1)
		w.ch <- op{typ: opClose, done: done}
		close(w.ch)
		w.mu.Unlock()
		w.closeErr = <-done
	})
	w.wg.Wait()
	return w.closeErr
}

func (w *Writer) send(o op) error {
	if w == nil {
		return fmt.Errorf("jsonl: writer 为空")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	w.ch <- o
	return nil
}

func (w *Writer) loop(f *os.File) {
	defer w.wg.Done()

	bw := bufio.NewWriterSize(f, 1<<16)
	enc := json.NewEncoder(bw)
	// 第一个错误保留到下一次 Flush/Close
	var sticky error

	for req := range w.ch {
		switch req.typ {
		case opWrite:
			if err := enc.Encode(req.val); err != nil && sticky == nil {
				sticky = fmt.Errorf("写入 %s 失败: %w", w.path, err)
			}
		case opFlush:
			err := bw.Flush()
			if sticky != nil {
				err, sticky = sticky, nil
			}
			req.done <- err
		case opClose:
			err := errors.Join(sticky, bw.Flush(), f.Close())
			req.done <- err
		}
	}
}
