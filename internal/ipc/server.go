package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/api"
	"github.com/rs/zerolog/log"
)

var logger = log.With().Str("component", "ipc").Logger()

// Server answers discovery requests on a unix socket. Each request is one
// JSON line (api.Request) and gets one JSON line (api.Response) back.
type Server struct {
	socketPath   string
	discoverer   api.Discoverer
	listener     net.Listener
	conns        map[net.Conn]struct{}
	connsLock    sync.Mutex
	wg           sync.WaitGroup
	ctx          context.Context
	cancel       context.CancelFunc
	lockFile     *os.File
	lockFilePath string
}

func NewServer(socketPath string, discoverer api.Discoverer) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		socketPath:   socketPath,
		discoverer:   discoverer,
		conns:        make(map[net.Conn]struct{}),
		ctx:          ctx,
		cancel:       cancel,
		lockFilePath: socketPath + ".lock",
	}
}

// checkAndCleanOldLock 清理已退出进程留下的锁文件
func (s *Server) checkAndCleanOldLock() {
	content, err := os.ReadFile(s.lockFilePath)
	if os.IsNotExist(err) {
		return
	}
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to read lock file, removing it")
		os.Remove(s.lockFilePath)
		return
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil {
		logger.Warn().Str("content", string(content)).Msg("Invalid PID in lock file, removing it")
		os.Remove(s.lockFilePath)
		return
	}

	if !isProcessRunning(pid) {
		logger.Info().Int("old_pid", pid).Msg("Process in lock file is not running, removing lock file")
		os.Remove(s.lockFilePath)
		return
	}

	logger.Info().Int("existing_pid", pid).Msg("Another process is still running")
}

// isProcessRunning 用 kill(pid, 0) 检查进程是否存在
func isProcessRunning(pid int) bool {
	return syscall.Kill(pid, 0) == nil
}

func (s *Server) acquireLock() error {
	s.checkAndCleanOldLock()

	file, err := os.OpenFile(s.lockFilePath, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create lock file: %w", err)
	}

	// 尝试获取独占锁
	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		file.Close()
		if errors.Is(err, syscall.EWOULDBLOCK) {
			return fmt.Errorf("another lyricline instance is already serving %s", s.socketPath)
		}
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	// 拿到锁之后再清空，避免覆盖正在运行的实例写入的 PID
	if err := file.Truncate(0); err != nil {
		syscall.Flock(int(file.Fd()), syscall.LOCK_UN)
		file.Close()
		return fmt.Errorf("failed to truncate lock file: %w", err)
	}
	if _, err := fmt.Fprintf(file, "%d\n", os.Getpid()); err != nil {
		syscall.Flock(int(file.Fd()), syscall.LOCK_UN)
		file.Close()
		return fmt.Errorf("failed to write PID to lock file: %w", err)
	}

	s.lockFile = file
	logger.Info().Str("lock_file", s.lockFilePath).Int("pid", os.Getpid()).Msg("Acquired process lock")
	return nil
}

func (s *Server) releaseLock() {
	if s.lockFile == nil {
		return
	}
	syscall.Flock(int(s.lockFile.Fd()), syscall.LOCK_UN)
	s.lockFile.Close()
	os.Remove(s.lockFilePath)
	logger.Info().Str("lock_file", s.lockFilePath).Msg("Released process lock")
	s.lockFile = nil
}

// Start takes the process lock, binds the socket and accepts connections in
// the background.
func (s *Server) Start() error {
	if err := s.acquireLock(); err != nil {
		return err
	}

	if err := os.RemoveAll(s.socketPath); err != nil {
		s.releaseLock()
		return err
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		s.releaseLock()
		return err
	}
	s.listener = listener

	logger.Info().Str("socket_path", s.socketPath).Msg("IPC server listening")

	s.wg.Add(1)
	go s.acceptConnections()
	return nil
}

func (s *Server) acceptConnections() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			logger.Error().Err(err).Msg("Failed to accept IPC connection")
			continue
		}
		if !s.track(conn) {
			conn.Close()
			return
		}
		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

// track registers conn so Close can reach it. It reports false once Close
// has started.
func (s *Server) track(conn net.Conn) bool {
	s.connsLock.Lock()
	defer s.connsLock.Unlock()
	if s.ctx.Err() != nil {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()
	logger.Debug().Msg("IPC client connected")

	defer func() {
		s.connsLock.Lock()
		delete(s.conns, conn)
		s.connsLock.Unlock()
		conn.Close()
		logger.Debug().Msg("IPC client disconnected")
	}()

	scanner := bufio.NewScanner(conn)
	encoder := json.NewEncoder(conn)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := encoder.Encode(s.handle(line)); err != nil {
			logger.Error().Err(err).Msg("Failed to write to client")
			return
		}
	}
}

func (s *Server) handle(line string) api.Response {
	var req api.Request
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		return api.Response{Error: "request must be a JSON object"}
	}
	req, err := req.Normalize()
	if err != nil {
		return api.FromError(err)
	}

	res, err := s.discoverer.Discover(s.ctx, req.Artist, req.PreferLong)
	if err != nil {
		return api.FromError(err)
	}
	return api.FromResult(res)
}

// Close stops accepting, cancels in-flight discoveries and waits for the
// connection handlers to return.
func (s *Server) Close() {
	s.connsLock.Lock()
	s.cancel()
	s.connsLock.Unlock()
	if s.listener != nil {
		s.listener.Close()
	}

	s.connsLock.Lock()
	for conn := range s.conns {
		conn.Close()
	}
	s.connsLock.Unlock()

	s.wg.Wait()
	s.releaseLock()
}
