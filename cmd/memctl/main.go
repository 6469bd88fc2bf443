// Command memctl boots the engine memory stack and reports on it.
package main

func main() {
	execute()
}
