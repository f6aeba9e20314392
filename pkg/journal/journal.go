// Package journal persists finished simulation runs to an append-only
// local log. Each record is the JSON encoding of one run result, snappy
// compressed and checksummed, so a sweep survives process restarts and
// the report tooling can replay past runs without a database.
package journal

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang/snappy"

	"github.com/dd0wney/liquigraph/pkg/sim"
)

// RecordType tags what a journal record contains.
type RecordType uint8

const (
	// RecordRun is the JSON encoding of one sim.Result.
	RecordRun RecordType = 1
)

const journalFileName = "runs.journal"

// Journal is an append-only, snappy-compressed record log.
type Journal struct {
	file    *os.File
	writer  *bufio.Writer
	seq     uint64
	dataDir string
	mu      sync.Mutex

	// Statistics
	totalWrites       uint64
	bytesUncompressed uint64
	bytesCompressed   uint64
}

// Stats holds journal compression statistics.
type Stats struct {
	Records           uint64
	BytesUncompressed uint64
	BytesCompressed   uint64
	CompressionRatio  float64 // e.g. 0.75 = 75% saved
}

// Open opens (or creates) the run journal in dataDir and recovers the
// sequence number from existing records.
func Open(dataDir string) (*Journal, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	path := filepath.Join(dataDir, journalFileName)
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal file: %w", err)
	}

	j := &Journal{
		file:    file,
		writer:  bufio.NewWriter(file),
		dataDir: dataDir,
	}

	if err := j.recoverSeq(); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to recover journal sequence: %w", err)
	}
	return j, nil
}

// Record appends one run result and returns its sequence number.
func (j *Journal) Record(result *sim.Result) (uint64, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return 0, fmt.Errorf("failed to encode run: %w", err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.seq++
	compressed := snappy.Encode(nil, data)

	j.totalWrites++
	j.bytesUncompressed += uint64(len(data))
	j.bytesCompressed += uint64(len(compressed))

	return j.seq, j.writeRecord(j.seq, RecordRun, compressed)
}

// writeRecord writes one framed record.
// Format: [Seq:8][Type:1][DataLen:4][Data:N][Checksum:4][Timestamp:8]
func (j *Journal) writeRecord(seq uint64, typ RecordType, compressed []byte) error {
	if err := binary.Write(j.writer, binary.BigEndian, seq); err != nil {
		return err
	}
	if err := j.writer.WriteByte(byte(typ)); err != nil {
		return err
	}
	if err := binary.Write(j.writer, binary.BigEndian, uint32(len(compressed))); err != nil {
		return err
	}
	if _, err := j.writer.Write(compressed); err != nil {
		return err
	}
	if err := binary.Write(j.writer, binary.BigEndian, crc32.ChecksumIEEE(compressed)); err != nil {
		return err
	}
	if err := binary.Write(j.writer, binary.BigEndian, time.Now().Unix()); err != nil {
		return err
	}
	return j.writer.Flush()
}

// Replay reads every recorded run in append order. Records are verified
// against their checksum; a mismatch aborts the replay.
func (j *Journal) Replay() ([]*sim.Result, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.readAll()
}

func (j *Journal) readAll() ([]*sim.Result, error) {
	file, err := os.Open(filepath.Join(j.dataDir, journalFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	var results []*sim.Result

	for {
		var seq uint64
		if err := binary.Read(reader, binary.BigEndian, &seq); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}

		typByte, err := reader.ReadByte()
		if err != nil {
			return nil, err
		}

		var dataLen uint32
		if err := binary.Read(reader, binary.BigEndian, &dataLen); err != nil {
			return nil, err
		}
		compressed := make([]byte, dataLen)
		if _, err := io.ReadFull(reader, compressed); err != nil {
			return nil, err
		}

		var checksum uint32
		if err := binary.Read(reader, binary.BigEndian, &checksum); err != nil {
			return nil, err
		}
		if crc32.ChecksumIEEE(compressed) != checksum {
			return nil, fmt.Errorf("checksum mismatch for record %d", seq)
		}

		var timestamp int64
		if err := binary.Read(reader, binary.BigEndian, &timestamp); err != nil {
			return nil, err
		}

		if RecordType(typByte) != RecordRun {
			return nil, fmt.Errorf("unknown record type %d for record %d", typByte, seq)
		}

		data, err := snappy.Decode(nil, compressed)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress record %d: %w", seq, err)
		}
		var result sim.Result
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, fmt.Errorf("failed to decode record %d: %w", seq, err)
		}
		results = append(results, &result)
	}

	return results, nil
}

// Flush forces buffered records to disk.
func (j *Journal) Flush() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.writer.Flush(); err != nil {
		return err
	}
	return j.file.Sync()
}

// Close flushes and closes the journal.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.writer.Flush(); err != nil {
		return err
	}
	if err := j.file.Sync(); err != nil {
		return err
	}
	return j.file.Close()
}

// Truncate discards all recorded runs and resets the sequence.
func (j *Journal) Truncate() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.writer.Flush()
	j.file.Close()

	path := filepath.Join(j.dataDir, journalFileName)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	j.file = file
	j.writer = bufio.NewWriter(file)
	j.seq = 0
	return nil
}

// CurrentSeq returns the sequence number of the last record.
func (j *Journal) CurrentSeq() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.seq
}

// Stats returns compression statistics for this journal's lifetime.
func (j *Journal) Stats() Stats {
	j.mu.Lock()
	defer j.mu.Unlock()

	ratio := 0.0
	if j.bytesUncompressed > 0 {
		ratio = 1.0 - float64(j.bytesCompressed)/float64(j.bytesUncompressed)
	}
	return Stats{
		Records:           j.totalWrites,
		BytesUncompressed: j.bytesUncompressed,
		BytesCompressed:   j.bytesCompressed,
		CompressionRatio:  ratio,
	}
}

// recoverSeq scans existing records to continue the sequence.
func (j *Journal) recoverSeq() error {
	results, err := j.readAll()
	if err != nil {
		return err
	}
	j.seq = uint64(len(results))
	return nil
}
