package grnutils

import (
	"bufio"
	"bytes"
	stdbzip2 "compress/bzip2"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/biogo/hts/bgzf"
	"github.com/dsnet/compress/bzip2"
	gzip "github.com/klauspost/pgzip"
)

/*BUFFERSIZE maximum size of a scanned line */
const BUFFERSIZE = 1000000

/*Filename type used to check if files exists */
type Filename string

/*Set implements flag.Value. The file must exist */
func (i *Filename) Set(filename string) error {
	if _, err := os.Stat(filename); err != nil {
		return fmt.Errorf("error with file %s: %w", filename, err)
	}

	*i = Filename(filename)
	return nil
}

func (i *Filename) String() string {
	return string(*i)
}

/*Check abort on error. Only used by the command line tools */
func Check(err error) {
	if err != nil {
		LOGGER.Fatal(err)
	}
}

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error

	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}

type writeCloser struct {
	io.Writer
	io.Closer
}

/*ReturnWriter return a writer for fname, compressed according to its extension */
func ReturnWriter(fname string) (io.WriteCloser, error) {
	var compressed io.WriteCloser
	var err error

	outputFile, err := os.Create(fname)
	if err != nil {
		return nil, err
	}

	switch path.Ext(fname) {
	case ".bz2":
		compressed, err = bzip2.NewWriter(outputFile, new(bzip2.WriterConfig))
		if err != nil {
			outputFile.Close()
			return nil, err
		}
	case ".gz":
		compressed = gzip.NewWriter(outputFile)
	case ".bgz":
		compressed = bgzf.NewWriter(outputFile, 1)
	default:
		return outputFile, nil
	}

	return writeCloser{compressed, multiCloser{compressed, outputFile}}, nil
}

/*ReturnReader return a line scanner for fname, uncompressed according to its extension.
The first startingLine lines are skipped */
func ReturnReader(fname string, startingLine int) (*bufio.Scanner, io.Closer, error) {
	var reader io.Reader
	var closer io.Closer

	fileOpen, err := os.Open(fname)
	if err != nil {
		return nil, nil, err
	}

	closer = fileOpen

	switch path.Ext(fname) {
	case ".bz2":
		reader = stdbzip2.NewReader(bufio.NewReader(fileOpen))
	case ".gz":
		readerGzip, err := gzip.NewReader(bufio.NewReader(fileOpen))
		if err != nil {
			fileOpen.Close()
			return nil, nil, fmt.Errorf("cannot read gzip file %s: %w", fname, err)
		}

		reader = readerGzip
		closer = multiCloser{readerGzip, fileOpen}
	case ".bgz":
		readerBgzf, err := bgzf.NewReader(fileOpen, 1)
		if err != nil {
			fileOpen.Close()
			return nil, nil, fmt.Errorf("cannot read bgzf file %s: %w", fname, err)
		}

		reader = readerBgzf
		closer = multiCloser{readerBgzf, fileOpen}
	default:
		reader = fileOpen
	}

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), BUFFERSIZE)

	if startingLine > 0 {
		scanUntilStartingLine(scanner, startingLine)
	}

	return scanner, closer, nil
}

/*scanUntilStartingLine ... */
func scanUntilStartingLine(scanner *bufio.Scanner, nbLine int) {
	for i := 0; i < nbLine; i++ {
		if !scanner.Scan() {
			break
		}
	}
}

/*WriteLines write one line per element of lines into fname */
func WriteLines(fname string, lines []string) error {
	var buffer bytes.Buffer

	writer, err := ReturnWriter(fname)
	if err != nil {
		return err
	}

	for count, line := range lines {
		buffer.WriteString(line)
		buffer.WriteRune('\n')

		if count%5000 == 4999 {
			if _, err = writer.Write(buffer.Bytes()); err != nil {
				writer.Close()
				return err
			}

			buffer.Reset()
		}
	}

	if _, err = writer.Write(buffer.Bytes()); err != nil {
		writer.Close()
		return err
	}

	return writer.Close()
}
