// Package menu provides the interactive prompt primitives used by the
// wizard flows: numbered selection lists, a paginated variant for long
// device and binding lists, free-text questions, and yes/no confirmation.
//
// All primitives run over an injected io.Reader and io.Writer, so flows
// built on them are testable headlessly with scripted input. Invalid
// answers re-prompt rather than fail; the only errors are an exhausted
// input stream (ErrInputClosed) and selection over an empty list
// (ErrNoChoices).
//
// # Usage
//
//	m := menu.New(os.Stdin, os.Stdout)
//	idx, err := m.Select("What next?", []string{"Run", "Quit"}, 0)
//	if err != nil {
//		return err
//	}
package menu
