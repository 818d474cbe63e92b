// Package repl implements the interactive shopctl shell.
//
// The shell keeps a current page location that the API client consults
// and updates: commands run "on" the current path, and a request rejected
// with 401 moves the shell to /login. The prompt always shows where the
// shell is. Built-ins:
//
//	open <path>   navigate to path
//	back          return to the previous path
//	where         print the current path
//	trail         print the visited paths, oldest first
//	history       print command history
//	complete <p>  list commands starting with p
//	exit, quit    leave the shell
//
// Everything else is split with shell quoting rules and handed to the
// executor, normally the shopctl command tree.
package repl
